package layout

// Default layout parameters. These mirror the documented defaults of the
// Config fields; zero-valued fields are replaced by them.
const (
	DefaultWidth           = 1600.0
	DefaultHeight          = 1200.0
	DefaultNodeWidth       = 160.0
	DefaultNodeHeight      = 60.0
	DefaultLevelSpacing    = 180.0
	DefaultBulletThreshold = 2
	DefaultMinAngleStep    = 0.35 // radians, ≈20°
	DefaultVerticalSpacing = 70.0
	DefaultStackOffset     = 240.0
)

// Legibility floors: no node box is ever smaller than this, no matter how
// short its label.
const (
	MinNodeWidth  = 80.0
	MinNodeHeight = 40.0
)

// Config holds the tunable layout parameters. The zero value is usable:
// Layout replaces zero fields with the package defaults.
type Config struct {
	// Width and Height are the nominal canvas dimensions. The Title is
	// placed at the canvas center; everything else is anchored to it.
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`

	// NodeWidth and NodeHeight are the base box dimensions before
	// per-level scaling.
	NodeWidth  float64 `json:"node_width" toml:"node_width"`
	NodeHeight float64 `json:"node_height" toml:"node_height"`

	// LevelSpacing is the base radial distance between hierarchy levels.
	// Sections sit at 2×LevelSpacing from the Title, Subsections at
	// 1.2×LevelSpacing from their Section, and so on.
	LevelSpacing float64 `json:"level_spacing" toml:"level_spacing"`

	// BulletThreshold is the direct-item count at which a Section switches
	// from radial-fan to vertical-stack placement.
	BulletThreshold int `json:"bullet_threshold" toml:"bullet_threshold"`

	// MinAngleStep is the floor on angular separation between fanned
	// items, in radians.
	MinAngleStep float64 `json:"min_angle_step" toml:"min_angle_step"`

	// VerticalSpacing is the distance between vertically stacked items.
	VerticalSpacing float64 `json:"vertical_spacing" toml:"vertical_spacing"`

	// StackOffset is the horizontal distance between a Section and its
	// vertical item stack.
	StackOffset float64 `json:"stack_offset" toml:"stack_offset"`
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		NodeWidth:       DefaultNodeWidth,
		NodeHeight:      DefaultNodeHeight,
		LevelSpacing:    DefaultLevelSpacing,
		BulletThreshold: DefaultBulletThreshold,
		MinAngleStep:    DefaultMinAngleStep,
		VerticalSpacing: DefaultVerticalSpacing,
		StackOffset:     DefaultStackOffset,
	}
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.NodeWidth == 0 {
		c.NodeWidth = d.NodeWidth
	}
	if c.NodeHeight == 0 {
		c.NodeHeight = d.NodeHeight
	}
	if c.LevelSpacing == 0 {
		c.LevelSpacing = d.LevelSpacing
	}
	if c.BulletThreshold == 0 {
		c.BulletThreshold = d.BulletThreshold
	}
	if c.MinAngleStep == 0 {
		c.MinAngleStep = d.MinAngleStep
	}
	if c.VerticalSpacing == 0 {
		c.VerticalSpacing = d.VerticalSpacing
	}
	if c.StackOffset == 0 {
		c.StackOffset = d.StackOffset
	}
	return c
}
