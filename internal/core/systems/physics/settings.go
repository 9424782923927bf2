package physics

// Stepper defaults.
const (
	DefaultMovementThreshold = 0.01
	DefaultRotationThreshold = 0.0001
	DefaultMaxSpeed          = 30.0
	DefaultGravity           = 9.8
	DefaultPushOut           = 1.3
	DefaultDamping           = 0.9
)

// Settings holds the stepper's tunables. The two thresholds are compared
// against squared linear magnitudes and absolute angular speed respectively
// and are independent of each other.
type Settings struct {
	MovementThreshold float64 `yaml:"movement_threshold"`
	RotationThreshold float64 `yaml:"rotation_threshold"`
	MaxSpeed          float64 `yaml:"max_speed"`
	Gravity           float64 `yaml:"gravity"`
	PushOut           float64 `yaml:"push_out"`
	Damping           float64 `yaml:"damping"`

	// HonorBodyMaxSpeed clamps each body against its own MaxSpeed instead of
	// the global MaxSpeed. Off by default: the global cap is the established
	// behavior and turning this on changes trajectories.
	HonorBodyMaxSpeed bool `yaml:"honor_body_max_speed"`
}

// DefaultSettings returns the arcade tuning.
func DefaultSettings() Settings {
	return Settings{
		MovementThreshold: DefaultMovementThreshold,
		RotationThreshold: DefaultRotationThreshold,
		MaxSpeed:          DefaultMaxSpeed,
		Gravity:           DefaultGravity,
		PushOut:           DefaultPushOut,
		Damping:           DefaultDamping,
	}
}

// Option configures a Physics instance.
type Option func(*Physics)

// WithSettings replaces all tunables.
func WithSettings(s Settings) Option {
	return func(p *Physics) { p.settings = s }
}

// WithNormalFunc replaces the collision-normal test. The default is AABBNormal.
func WithNormalFunc(fn NormalFunc) Option {
	return func(p *Physics) { p.normal = fn }
}

// WithStaticForces registers static forces up front.
func WithStaticForces(forces ...Force) Option {
	return func(p *Physics) { p.staticForces = append(p.staticForces, forces...) }
}
