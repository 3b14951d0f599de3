package sources

import (
	"fmt"
	"sort"
	"sync"

	"github.com/darianmavgo/tabimport/sources/common"
)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a source driver available by the provided kind.
// If Register is called twice with the same name or if driver is nil, it panics.
func Register(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("sources: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("sources: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

// Open opens a producer by driver name.
func Open(driverName string, config *common.SourceConfig) (Producer, error) {
	driversMu.RLock()
	driver, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("sources: unknown driver %q (forgotten import?)", driverName)
	}
	if config == nil {
		config = &common.SourceConfig{}
	}
	return driver.Open(config)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}
