package dotpath

import (
	"github.com/goliatone/go-dotpath/engine"
	"github.com/goliatone/go-dotpath/pkg/activity"
)

// Option configures a Document.
type Option func(*documentConfig)

type documentConfig struct {
	policy         engine.DefaultPolicy
	hooks          engine.Hooks
	logger         AccessLogger
	activityHooks  activity.Hooks
	activityConfig *activity.Config
}

func applyOptions(opts []Option) documentConfig {
	cfg := documentConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// emitterConfig enables emission whenever hooks are present unless the
// caller supplied an explicit configuration.
func (cfg documentConfig) emitterConfig() activity.Config {
	if cfg.activityConfig != nil {
		return *cfg.activityConfig
	}
	return activity.Config{Enabled: len(cfg.activityHooks) > 0}
}

func (cfg documentConfig) accessLogger() AccessLogger {
	if cfg.logger != nil {
		return cfg.logger
	}
	return noopAccessLogger{}
}

// WithDefaultPolicy selects how defaults passed to GetOr and GetMany are
// recognised. engine.DefaultNullOnly is used when unset.
func WithDefaultPolicy(policy engine.DefaultPolicy) Option {
	return func(cfg *documentConfig) {
		cfg.policy = policy
	}
}

// WithDefaultHook observes defaults returned in place of missing keys.
func WithDefaultHook(fn func(def any, path, segment string)) Option {
	return func(cfg *documentConfig) {
		cfg.hooks.OnDefault = fn
	}
}

// WithResolveHook observes values resolved by Get, GetOr and GetMany.
func WithResolveHook(fn func(value any, path string)) Option {
	return func(cfg *documentConfig) {
		cfg.hooks.OnResolve = fn
	}
}

// WithSetHook observes values written by Set and SetMany. Writes that leave
// the document unchanged are not reported.
func WithSetHook(fn func(value any, path string)) Option {
	return func(cfg *documentConfig) {
		cfg.hooks.OnSet = fn
	}
}

// WithReplaceHook observes the same writes as WithSetHook together with the
// value each one replaces.
func WithReplaceHook(fn func(path string, previous, value any)) Option {
	return func(cfg *documentConfig) {
		cfg.hooks.OnReplace = fn
	}
}

// WithDeleteHook observes paths removed by Delete and DeleteStrict.
func WithDeleteHook(fn func(path string, removed any)) Option {
	return func(cfg *documentConfig) {
		cfg.hooks.OnDelete = fn
	}
}

// WithActivityHooks attaches activity hooks notified on set, delete and
// layer operations. Nil entries are dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := activity.CloneHooks(hooks)
	return func(cfg *documentConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig overrides the emitter defaults (channel, document name,
// enabled flag).
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *documentConfig) {
		c := config
		cfg.activityConfig = &c
	}
}
