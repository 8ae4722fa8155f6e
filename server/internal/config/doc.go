// Package config loads the server configuration from the `server:` section
// of config.yaml and watches the file for changes.
//
// Config fields:
//   - HTTPPort                     : REST API, /metrics and /ws/dashboard port (default 8080)
//   - Timezone                     : IANA zone that defines "today" (default UTC)
//   - LogLevel                     : debug|info|warn|error (default info)
//   - Profiles.TTL                 : how long a child profile stays live (default 24h)
//   - Stream.Interval              : dashboard broadcast period (default 30s)
//   - Reminders.MaxPerMedication   : reminder cap per medication (default 64)
//   - Reminders.AppointmentLead    : appointment reminder lead time (default 24h)
//
// Load(path) applies defaults before unmarshalling, then validates.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. An invalid file is logged and
// skipped; the previous config stays in effect.
package config
