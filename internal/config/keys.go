package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Keys lists the dotted keys accepted by Set, in display order.
func Keys() []string {
	return []string{
		"schedule.domain_start",
		"schedule.domain_end",
		"schedule.granularity_minutes",
		"schedule.slot_height",
		"schedule.header_height",
		"schedule.default_duration",
		"schedule.revert_on_failure",
		"schedule.orphan_cleanup",
		"storage.driver",
		"storage.db_path",
		"storage.dsn",
		"storage.base_url",
		"storage.api_key",
		"storage.timeout_seconds",
		"storage.rate_limit_per_second",
		"cache.redis_addr",
		"cache.redis_password",
		"cache.redis_db",
		"cache.ttl_seconds",
		"ui.theme",
		"ui.palette",
		"server.addr",
		"server.metrics_path",
	}
}

// Get returns the string form of a dotted key.
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "schedule.domain_start":
		return c.Schedule.DomainStart, nil
	case "schedule.domain_end":
		return c.Schedule.DomainEnd, nil
	case "schedule.granularity_minutes":
		return strconv.Itoa(c.Schedule.GranularityMinutes), nil
	case "schedule.slot_height":
		return strconv.Itoa(c.Schedule.SlotHeight), nil
	case "schedule.header_height":
		return strconv.Itoa(c.Schedule.HeaderHeight), nil
	case "schedule.default_duration":
		return strconv.Itoa(c.Schedule.DefaultDuration), nil
	case "schedule.revert_on_failure":
		return strconv.FormatBool(c.Schedule.RevertOnFailure), nil
	case "schedule.orphan_cleanup":
		return strconv.FormatBool(c.Schedule.OrphanCleanup), nil
	case "storage.driver":
		return c.Storage.Driver, nil
	case "storage.db_path":
		return c.Storage.DBPath, nil
	case "storage.dsn":
		return c.Storage.DSN, nil
	case "storage.base_url":
		return c.Storage.BaseURL, nil
	case "storage.api_key":
		return c.Storage.APIKey, nil
	case "storage.timeout_seconds":
		return strconv.Itoa(c.Storage.TimeoutSeconds), nil
	case "storage.rate_limit_per_second":
		return strconv.FormatFloat(c.Storage.RateLimitPerSecond, 'f', -1, 64), nil
	case "cache.redis_addr":
		return c.Cache.RedisAddr, nil
	case "cache.redis_password":
		return c.Cache.RedisPassword, nil
	case "cache.redis_db":
		return strconv.Itoa(c.Cache.RedisDB), nil
	case "cache.ttl_seconds":
		return strconv.Itoa(c.Cache.TTLSeconds), nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.palette":
		return strings.Join(c.UI.Palette, ","), nil
	case "server.addr":
		return c.Server.Addr, nil
	case "server.metrics_path":
		return c.Server.MetricsPath, nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// Set assigns a dotted key from its string form. It does not validate the
// resulting config; call Validate before saving.
func (c *Config) Set(key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "schedule.domain_start":
		c.Schedule.DomainStart = value
	case "schedule.domain_end":
		c.Schedule.DomainEnd = value
	case "schedule.granularity_minutes":
		c.Schedule.GranularityMinutes, err = strconv.Atoi(value)
	case "schedule.slot_height":
		c.Schedule.SlotHeight, err = strconv.Atoi(value)
	case "schedule.header_height":
		c.Schedule.HeaderHeight, err = strconv.Atoi(value)
	case "schedule.default_duration":
		c.Schedule.DefaultDuration, err = strconv.Atoi(value)
	case "schedule.revert_on_failure":
		c.Schedule.RevertOnFailure, err = strconv.ParseBool(value)
	case "schedule.orphan_cleanup":
		c.Schedule.OrphanCleanup, err = strconv.ParseBool(value)
	case "storage.driver":
		c.Storage.Driver = value
	case "storage.db_path":
		c.Storage.DBPath = expandPath(value)
	case "storage.dsn":
		c.Storage.DSN = value
	case "storage.base_url":
		c.Storage.BaseURL = value
	case "storage.api_key":
		c.Storage.APIKey = value
	case "storage.timeout_seconds":
		c.Storage.TimeoutSeconds, err = strconv.Atoi(value)
	case "storage.rate_limit_per_second":
		c.Storage.RateLimitPerSecond, err = strconv.ParseFloat(value, 64)
	case "cache.redis_addr":
		c.Cache.RedisAddr = value
	case "cache.redis_password":
		c.Cache.RedisPassword = value
	case "cache.redis_db":
		c.Cache.RedisDB, err = strconv.Atoi(value)
	case "cache.ttl_seconds":
		c.Cache.TTLSeconds, err = strconv.Atoi(value)
	case "ui.theme":
		c.UI.Theme = strings.ToLower(value)
	case "ui.palette":
		c.UI.Palette = splitList(value)
	case "server.addr":
		c.Server.Addr = value
	case "server.metrics_path":
		c.Server.MetricsPath = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
