package protonate

import (
	"context"

	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/resource"
	"github.com/hupe1980/protfeat/structure"
)

// Limited runs a Protonator only while holding a resource.Controller slot.
type Limited struct {
	next hbond.Protonator
	rc   *resource.Controller
}

var _ hbond.Protonator = (*Limited)(nil)

// NewLimited wraps next. A nil controller imposes no limits.
func NewLimited(next hbond.Protonator, rc *resource.Controller) *Limited {
	return &Limited{next: next, rc: rc}
}

// AddHydrogens waits for a slot, then delegates.
func (l *Limited) AddHydrogens(ctx context.Context, s *structure.Structure) (*structure.Structure, error) {
	release, err := l.rc.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return l.next.AddHydrogens(ctx, s)
}
