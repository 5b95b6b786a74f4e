package store

import (
	"io/fs"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	saves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "familyconnect_collection_saves_total",
		Help: "Collection snapshot writes, by collection key.",
	}, []string{"key"})

	loads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "familyconnect_collection_loads_total",
		Help: "Successful collection loads, by collection key.",
	}, []string{"key"})

	loadFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "familyconnect_collection_load_fallbacks_total",
		Help: "Loads that fell back to the default value, by key and reason.",
	}, []string{"key", "reason"})
)

func init() {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "familyconnect_db_size_bytes",
		Help: "Best-effort on-disk size of the pebble database directory.",
	}, func() float64 { return float64(DBSizeBytes()) })
}

// DBSizeBytes returns the best-effort on-disk size of the DB directory, or
// zero when the store is not open.
func DBSizeBytes() uint64 {
	if db == nil || dbPath == "" {
		return 0
	}
	var total uint64
	_ = filepath.WalkDir(dbPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		total += uint64(fi.Size())
		return nil
	})
	return total
}
