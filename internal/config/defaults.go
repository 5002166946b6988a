package config

const (
	defaultRequestTimeout  = 10
	defaultRehearsalsTable = 749
	defaultPlayersTable    = 495
	defaultPiecesTable     = 747
	defaultNamingMarker    = "Probe"
	defaultExcludeMarker   = "Sonder"
	defaultPadWidth        = 3
	defaultStatePath       = "~/.local/state/probenbuch/auth.json"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Baserow: Baserow{
			RequestTimeout:  defaultRequestTimeout,
			RehearsalsTable: defaultRehearsalsTable,
			PlayersTable:    defaultPlayersTable,
			PiecesTable:     defaultPiecesTable,
		},
		Naming: Naming{
			Marker:        defaultNamingMarker,
			ExcludeMarker: defaultExcludeMarker,
			PadWidth:      defaultPadWidth,
		},
		Paths: Paths{
			StatePath: defaultStatePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
