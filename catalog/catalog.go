// Package catalog loads the static game data (brawler roster, trophy
// road, level table) from JSON files and can hot-swap them when the
// files change on disk.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"brawl/model"
)

// Files names the data files a catalog is loaded from. TrophyRoad and
// Levels are optional; Brawlers is not.
type Files struct {
	Brawlers   string
	TrophyRoad string
	Levels     string
}

type data struct {
	brawlers   []model.Brawler
	byName     map[string]model.Brawler
	trophyRoad model.TrophyRoad
	levels     model.LevelManager
}

// Catalog is the loaded game data. Reads see a consistent snapshot
// even while a reload swaps the data underneath.
type Catalog struct {
	log     *zap.Logger
	files   Files
	data    atomic.Pointer[data]
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Load reads the data files and builds a catalog.
func Load(log *zap.Logger, files Files) (*Catalog, error) {
	c := &Catalog{log: log.Named("catalog"), files: files}
	d, err := c.load()
	if err != nil {
		return nil, err
	}
	c.data.Store(d)
	return c, nil
}

// Brawlers returns the current roster.
func (c *Catalog) Brawlers() []model.Brawler {
	return c.data.Load().brawlers
}

// Brawler looks up a roster entry by name.
func (c *Catalog) Brawler(name string) (model.Brawler, bool) {
	b, ok := c.data.Load().byName[name]
	return b, ok
}

func (c *Catalog) TrophyRoad() model.TrophyRoad {
	return c.data.Load().trophyRoad
}

func (c *Catalog) Levels() model.LevelManager {
	return c.data.Load().levels
}

// Watch reloads the catalog whenever one of its files is rewritten. A
// reload that fails to parse keeps the previous data.
func (c *Catalog) Watch() error {
	if c.watcher != nil {
		return errors.New("catalog: already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: watcher: %w", err)
	}

	watched := map[string]bool{}
	for _, f := range []string{c.files.Brawlers, c.files.TrophyRoad, c.files.Levels} {
		if f == "" {
			continue
		}
		dir := filepath.Dir(f)
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("catalog: watch %s: %w", dir, err)
		}
		watched[dir] = true
	}

	c.watcher = watcher
	c.done = make(chan struct{})
	go c.watch()
	return nil
}

// Close stops the watcher if one is running.
func (c *Catalog) Close() error {
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Close()
	<-c.done
	return err
}

func (c *Catalog) watch() {
	defer close(c.done)
	for {
		select {
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if !c.ownsFile(ev.Name) {
				continue
			}
			d, err := c.load()
			if err != nil {
				c.log.Warn("reload failed, keeping previous data",
					zap.String("file", ev.Name), zap.Error(err))
				continue
			}
			c.data.Store(d)
			c.log.Info("reloaded", zap.String("file", ev.Name),
				zap.Int("brawlers", len(d.brawlers)))
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (c *Catalog) ownsFile(name string) bool {
	for _, f := range []string{c.files.Brawlers, c.files.TrophyRoad, c.files.Levels} {
		if f != "" && filepath.Clean(name) == filepath.Clean(f) {
			return true
		}
	}
	return false
}

func (c *Catalog) load() (*data, error) {
	d := &data{byName: map[string]model.Brawler{}}

	if err := readJSON(c.files.Brawlers, &d.brawlers); err != nil {
		return nil, fmt.Errorf("catalog: brawlers: %w", err)
	}
	for _, b := range d.brawlers {
		d.byName[b.Name] = b
	}

	if c.files.TrophyRoad != "" {
		if err := readJSON(c.files.TrophyRoad, &d.trophyRoad); err != nil {
			return nil, fmt.Errorf("catalog: trophy road: %w", err)
		}
	}

	if c.files.Levels != "" {
		var levels []model.Level
		if err := readJSON(c.files.Levels, &levels); err != nil {
			return nil, fmt.Errorf("catalog: levels: %w", err)
		}
		m, ok := model.TryFromUnsorted(levels)
		if !ok {
			return nil, errors.New("catalog: levels: tiers are not contiguous")
		}
		d.levels = model.NewLevelManager(m)
	}

	return d, nil
}

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
