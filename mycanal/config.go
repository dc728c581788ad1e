package mycanal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/siddontang/go-mysql/replication"

	"github.com/huangjunwen/mytemporal/temporal"
)

// Config is used for fulldump and incrdump.
type Config struct {
	// Host of MySQL server.
	Host string `json:"host"`

	// Port of MySQL server.
	Port uint16 `json:"port"`

	// User for connection.
	User string `json:"user"`

	// Password for connection.
	Password string `json:"password"`

	// Charset for connecting.
	Charset string `json:"charset"`

	// ServerId is used by incrdump only (as a replication node).
	ServerId uint32 `json:"serverId"`

	// Temporal contains settings of temporal values normalization,
	// e.g. {"format.timestamp.zone": "UTC+8"}. See temporal.Configure.
	Temporal map[string]string `json:"temporal"`
}

// ToDriverCfg converts cfg to mysql driver config.
//
// Session time_zone is pinned to UTC and time values are parsed in UTC, so that TIMESTAMP
// values are read as UTC instants, and DATETIME values keep their wall clock.
func (cfg *Config) ToDriverCfg() *mysql.Config {
	ret := mysql.NewConfig()
	ret.Net = "tcp"
	ret.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	ret.User = cfg.User
	ret.Passwd = cfg.Password
	ret.ParseTime = true
	ret.Loc = time.UTC
	ret.InterpolateParams = true
	if ret.Params == nil {
		ret.Params = map[string]string{}
	}
	ret.Params["charset"] = cfg.getCharset()
	ret.Params["time_zone"] = "'+00:00'"
	return ret
}

// ToBinlogSyncerCfg converts cfg to binlog syncer config. Needs ServerId.
//
// TimestampStringLocation is UTC, as incrdump.FromBinlogValue expects.
func (cfg *Config) ToBinlogSyncerCfg() replication.BinlogSyncerConfig {
	if cfg.ServerId == 0 {
		panic(fmt.Errorf("ToBinlogSyncerCfg: no ServerId"))
	}
	return replication.BinlogSyncerConfig{
		ServerID:  cfg.ServerId,
		Host:      cfg.Host,
		Port:      cfg.Port,
		User:      cfg.User,
		Password:  cfg.Password,
		Charset:   cfg.getCharset(),
		ParseTime: true,

		// Used when ParseTime is off: TIMESTAMP strings are then formatted in UTC.
		TimestampStringLocation: time.UTC,
	}
}

// Client opens mysql db.
func (cfg *Config) Client() (*sql.DB, error) {
	return sql.Open("mysql", cfg.ToDriverCfg().FormatDSN())
}

// Normalizer creates a temporal normalizer from cfg.Temporal. opts are applied before settings.
func (cfg *Config) Normalizer(opts ...temporal.Option) (*temporal.Normalizer, error) {
	return temporal.Configure(cfg.Temporal, opts...)
}

func (cfg *Config) getCharset() string {
	if cfg.Charset != "" {
		return cfg.Charset
	}
	return "utf8mb4"
}
