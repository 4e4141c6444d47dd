// Package config provides configuration management for alertstate.
//
// Configuration is assembled in layers, later layers win:
//
//  1. built-in defaults (GetDefaultConfig)
//  2. config.yaml, by default ~/.config/alertstate/config.yaml
//  3. a dotenv file (LoadEnvFile) and the process environment (ApplyEnv)
//  4. command-line flags, applied by the cmd package
//
// # File Format
//
//	project:
//	  name: checkout
//	  dir: ./monitors/checkout
//	datadog:
//	  site: datadoghq.eu
//	  pageSize: 1000
//	  timeout: 30s
//	notification: "@webhook-GardenerChat @all"
//	retry:
//	  maxRetries: 3
//	  cooldown: 60s
//	metrics:
//	  pushgatewayURL: http://pushgateway:9091
//	logging:
//	  level: info
//	  format: text
//
// API and application keys are normally taken from DD_API_KEY and DD_APP_KEY
// rather than written to the file.
//
// # Errors
//
// ConfigurationError and ConfigurationErrorCollection describe problems with
// files on disk. The declared monitor loader uses them too so that every
// malformed monitor file is reported in one go. Validate returns
// ValidationErrors listing every invalid setting.
package config
