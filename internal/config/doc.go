// Package config loads storebridge CLI configuration.
//
// Configuration comes from storebridge.json or storebridge.yaml in the
// working directory (or a file named with --config), overridden by
// STOREBRIDGE_* environment variables. Keys are dotted; in the environment
// dots become underscores (log.level is STOREBRIDGE_LOG_LEVEL).
//
// # Configuration File Structure
//
//	log:
//	  level: debug        # debug, info, warn, error
//	  format: text        # text or json
//	metrics:
//	  enabled: true
//	  namespace: storebridge
//	tracing:
//	  enabled: false
//	  tracer_name: storebridge
//	bridge:
//	  initial_notify: true
//
// # Usage
//
//	cfg, err := config.Resolve(flagPath)
//	if err != nil {
//	    return err
//	}
//	logger := cfg.Log.Logger(os.Stderr)
//	opts := cfg.BridgeOptions(logger, registry)
package config
