package domain

// Layout maps grid coordinates to display positions.
// The transform is affine: the north-west corner of the bound sits at
// (OriginX, OriginY) and every cell is CellWidth x CellHeight.
type Layout struct {
	CellWidth  int `json:"cell_width" yaml:"cell_width" mapstructure:"cell_width"`
	CellHeight int `json:"cell_height" yaml:"cell_height" mapstructure:"cell_height"`
	OriginX    int `json:"origin_x" yaml:"origin_x" mapstructure:"origin_x"`
	OriginY    int `json:"origin_y" yaml:"origin_y" mapstructure:"origin_y"`
}

// DefaultLayout uses square 120px cells anchored at (0,0).
func DefaultLayout() Layout {
	return Layout{CellWidth: 120, CellHeight: 120}
}

// Position returns the top-left pixel of the cell at c under bound b.
func (l Layout) Position(c Coord, b Bound) Pixel {
	return Pixel{
		X: l.OriginX + (c.X+b.West)*l.CellWidth,
		Y: l.OriginY + (b.North-c.Y)*l.CellHeight,
	}
}

// Size returns the pixel size of the whole bound.
func (l Layout) Size(b Bound) (width, height int) {
	return b.Width() * l.CellWidth, b.Height() * l.CellHeight
}
