package geo

import "context"

// StaticSource is a PositionSource with a fixed fix, for platforms where
// coordinates arrive out of band (command-line flags, EXIF data).
type StaticSource struct {
	Position Position
}

func (s StaticSource) Current(ctx context.Context, _ PositionOptions) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	return s.Position, nil
}
