package config // package config loads application configuration from environment variables

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable; every one has a default so
// the server starts with no environment at all.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	AdminUsername  string // username of the seeded admin account (id 0)
	AdminEmail     string // email of the seeded admin account
	AdminPassword  string // password of the seeded admin account
	WelcomeMessage string // content of the seeded welcome message (id 0)
	EventsEnabled  bool   // publish message activity events to the broker
}

// Load reads configuration values from environment variables,
// falling back to the defaults baked in here.
func Load() Config {
	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		AdminUsername:  envStr("ADMIN_USERNAME", "admin"),
		AdminEmail:     envStr("ADMIN_EMAIL", "admin@chat.local"),
		AdminPassword:  envStr("ADMIN_PASSWORD", "adminpassword"),
		WelcomeMessage: envStr("WELCOME_MESSAGE", "Welcome to the chat!\nFeel free to explore and connect with others."),
		EventsEnabled:  envBool("QUEUE_EVENTS_ENABLED", false),
	}
}
