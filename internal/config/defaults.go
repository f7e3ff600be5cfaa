package config

const (
	defaultBind        = "127.0.0.1"
	defaultLibraryDir  = "~/Music/Audio Music Apps/Articulation Settings"
	defaultSearchLimit = 100
	defaultChannel     = 1
	defaultLogDir      = "~/.local/share/artbridge/logs"
	defaultLogFormat   = "auto"
	defaultLogLevel    = "info"
)

// BasePort is the first port tried when server.port is 0.
const BasePort = 7101

// ReservedPorts are skipped during automatic port selection because the host
// OS claims them for its own services.
var ReservedPorts = map[int]struct{}{
	3000: {},
	5000: {},
	7000: {},
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind: defaultBind,
			Port: 0,
		},
		MIDI: MIDI{
			Channel:      defaultChannel,
			ApplyChannel: true,
		},
		Library: Library{
			Dir:         defaultLibraryDir,
			SearchLimit: defaultSearchLimit,
		},
		Assign: Assign{
			StartNote: 0,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			LogDir: defaultLogDir,
		},
	}
}
