package component

import (
	"reflect"
	"unicode"
	"unicode/utf8"

	"brawl/session"
)

var (
	typeOfSession = reflect.TypeOf((*session.Session)(nil)).Elem()
	typeOfError   = reflect.TypeOf((*error)(nil)).Elem()
)

func isExported(name string) bool {
	w, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(w)
}

// isHandlerMethod reports whether a method has the handler shape:
// func (c *C) Name(s session.Session, req *T) or the same with a
// trailing error return. T is any struct the serializer can decode.
func isHandlerMethod(method reflect.Method) bool {
	mt := method.Type
	if method.PkgPath != "" {
		return false
	}
	if mt.NumIn() != 3 {
		return false
	}
	if t1 := mt.In(1); t1 != typeOfSession && !t1.Implements(typeOfSession) {
		return false
	}
	if t2 := mt.In(2); t2.Kind() != reflect.Pointer || t2.Elem().Kind() != reflect.Struct {
		return false
	}
	switch mt.NumOut() {
	case 0:
		return true
	case 1:
		return mt.Out(0) == typeOfError
	default:
		return false
	}
}
