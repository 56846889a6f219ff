package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required values are enforced by must() at
// startup; policy knobs fall back to documented defaults.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign access and check-in JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	Booking BookingPolicy // booking guard thresholds
	Token   TokenPolicy   // check-in token window and usage policy
	Refund  RefundPolicy  // cancellation refund thresholds

	DefaultNightlyRateCents int64 // fallback rate when the pricing oracle fails
}

// BookingPolicy bounds what a single booking may request.
type BookingPolicy struct {
	MinStayNights   int // minimum stay length (default 1)
	MaxStayNights   int // maximum stay length (default 30)
	MaxRoomsPerType int // per-booking cap on rooms of one type (default 5)
	TxTimeout       time.Duration // upper bound on one transition transaction
}

// TokenPolicy controls the check-in token lifecycle.
type TokenPolicy struct {
	OpensBeforeCheckIn time.Duration // how long before check-in the token becomes valid
	ValidUntilAfter    time.Duration // how far past check-in day start the token stays valid
	Grace              time.Duration // post-expiry grace tolerated as a warning
	MaxUsage           int           // usage cap per token (re-scan tolerance)
}

// RefundPolicy holds the two cancellation thresholds in hours before
// check-in.  At or above Full -> 100%, at or above Half -> 50%, else 0%.
type RefundPolicy struct {
	FullHours float64
	HalfHours float64
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		Booking: BookingPolicy{
			MinStayNights:   envInt("BOOKING_MIN_NIGHTS", 1),
			MaxStayNights:   envInt("BOOKING_MAX_NIGHTS", 30),
			MaxRoomsPerType: envInt("BOOKING_MAX_ROOMS_PER_TYPE", 5),
			TxTimeout:       envDur("BOOKING_TX_TIMEOUT", 5*time.Second),
		},
		Token: TokenPolicy{
			OpensBeforeCheckIn: envDur("CHECKIN_TOKEN_OPENS_BEFORE", 6*time.Hour),
			ValidUntilAfter:    envDur("CHECKIN_TOKEN_VALID_AFTER", 26*time.Hour),
			Grace:              envDur("CHECKIN_TOKEN_GRACE", 15*time.Minute),
			MaxUsage:           envInt("CHECKIN_TOKEN_MAX_USAGE", 3),
		},
		Refund: RefundPolicy{
			FullHours: float64(envInt("REFUND_FULL_HOURS", 48)),
			HalfHours: float64(envInt("REFUND_HALF_HOURS", 12)),
		},
		DefaultNightlyRateCents: int64(envInt("DEFAULT_NIGHTLY_RATE_CENTS", 10000)),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
