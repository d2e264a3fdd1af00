package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/spf13/viper"
)

// Source selects where invoices are loaded from.
type Source string

// Invoice sources.
const (
	SourceCSV Source = "csv"
	SourceDB  Source = "db"
)

// Dashboard holds the settings shared by every view surface.
type Dashboard struct {
	ReferenceDate time.Time
	DataPath      string
	LogoPath      string
	Theme         string
	DatabasePath  string
	ServeAddr     string
	Source        Source
}

// Config keys.
const (
	KeyDataPath      = "dashboard.data_path"
	KeyLogoPath      = "dashboard.logo_path"
	KeyReferenceDate = "dashboard.reference_date"
	KeyTheme         = "dashboard.theme"
	KeySource        = "dashboard.source"
	KeyDatabasePath  = "database.path"
	KeyServeAddr     = "serve.addr"
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeySource, string(SourceCSV))
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyServeAddr, "127.0.0.1:8501")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// LoadDashboard reads dashboard settings from v. now supplies the reference
// date when dashboard.reference_date is unset.
func LoadDashboard(v *viper.Viper, now time.Time) (*Dashboard, error) {
	d := &Dashboard{
		DataPath:     ExpandPath(v.GetString(KeyDataPath)),
		LogoPath:     ExpandPath(v.GetString(KeyLogoPath)),
		Theme:        strings.ToLower(strings.TrimSpace(v.GetString(KeyTheme))),
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		ServeAddr:    v.GetString(KeyServeAddr),
		Source:       Source(strings.ToLower(v.GetString(KeySource))),
	}

	if d.DatabasePath == "" {
		d.DatabasePath = ExpandPath(DefaultDatabasePath)
	}
	if d.Source == "" {
		d.Source = SourceCSV
	}

	switch d.Source {
	case SourceCSV:
		if d.DataPath == "" {
			return nil, common.NewUserError("no dataset configured; pass --file or set dashboard.data_path", common.ErrMissingConfig)
		}
	case SourceDB:
	default:
		return nil, fmt.Errorf("%w: unknown source %q (want csv or db)", common.ErrInvalidConfig, d.Source)
	}

	ref, err := ParseReferenceDate(v.GetString(KeyReferenceDate), now)
	if err != nil {
		return nil, err
	}
	d.ReferenceDate = ref

	return d, nil
}

// ParseReferenceDate parses a YYYY-MM-DD date; blank or "today" yields now's date.
func ParseReferenceDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: reference date %q must be YYYY-MM-DD", common.ErrInvalidConfig, s)
	}
	return t, nil
}
