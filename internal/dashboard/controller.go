package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

// ErrRecordNotFound is surfaced when an edit targets an id absent from the
// freshly fetched collection (stale listing or a concurrent delete). This
// is an explicit error condition, not a silent no-op.
var ErrRecordNotFound = errors.New("dashboard: record not found in current listing")

// ErrDeleteNotAllowed means the entity rules keep the delete control off
// this row; nothing is sent to the server.
var ErrDeleteNotAllowed = errors.New("dashboard: delete not permitted for this record")

// Mode distinguishes the two form lifecycles of a controller.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Record is one listing row as the controller sees it: the identifier plus
// the form representation of its fields.
type Record struct {
	ID   int64
	Form FormState
}

// EntityOps binds a controller to one entity kind. List/Create/Update/
// Delete talk to the gateway with endpoints already resolved for the
// session's role; the controller itself is endpoint-agnostic.
type EntityOps struct {
	// Kind names the entity in notifications ("User", "Opportunity").
	Kind string
	// SecretField names the credential field that a create must carry and
	// an edit omits when blank (blank means "leave unchanged"). Empty when
	// the entity has no secret.
	SecretField string
	// DeletedMsg is the success notification for Delete.
	DeletedMsg string

	List   func(ctx context.Context) ([]Record, error)
	Create func(ctx context.Context, form FormState) error
	Update func(ctx context.Context, id int64, form FormState) error
	Delete func(ctx context.Context, id int64) error
	// Toggle flips a boolean server-side flag with a bodyless request.
	Toggle func(ctx context.Context, id int64) error
	// CanDelete reports whether the delete control is exposed for a row at
	// all; nil means always.
	CanDelete func(rec Record) bool
}

// Controller is the reusable create/edit/delete workflow shared by account
// and opportunity management. One instance is bound to exactly one entity
// kind for its open/close cycle.
type Controller struct {
	ops      EntityOps
	notifier Notifier
	confirm  Confirmer
	reload   func()
	logger   *slog.Logger

	mu     sync.Mutex
	open   bool
	mode   Mode
	editID int64
	form   FormState
}

func NewController(ops EntityOps, notifier Notifier, confirm Confirmer, reload func(), logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if reload == nil {
		reload = func() {}
	}
	return &Controller{ops: ops, notifier: notifier, confirm: confirm, reload: reload, logger: logger}
}

// OpenCreate opens a blank form in create mode. No network call.
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = FormState{}
	c.editID = 0
	c.mode = ModeCreate
	c.open = true
}

// OpenEdit fetches the current collection, locates id and opens the form
// bound to it. A missing id is surfaced to the user and returned.
func (c *Controller) OpenEdit(ctx context.Context, id int64) error {
	recs, err := c.ops.List(ctx)
	if err != nil {
		c.notifier.Error(placement.UserMessage(err))
		return err
	}

	for _, rec := range recs {
		if rec.ID != id {
			continue
		}
		form := rec.Form.Clone()
		if c.ops.SecretField != "" {
			delete(form, c.ops.SecretField)
		}

		c.mu.Lock()
		c.form = form
		c.editID = id
		c.mode = ModeEdit
		c.open = true
		c.mu.Unlock()
		return nil
	}

	c.logger.Warn("dashboard: edit target vanished from listing",
		slog.String("kind", c.ops.Kind), slog.Int64("id", id))
	c.notifier.Error(fmt.Sprintf("%s no longer exists; the listing was refreshed", c.ops.Kind))
	return ErrRecordNotFound
}

// Submit issues the create or update bound at open time. On success the
// form closes and the owning panel reloads; on failure the form stays open
// and the server message is surfaced.
func (c *Controller) Submit(ctx context.Context, form FormState) error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return errors.New("dashboard: submit with no open form")
	}
	mode, id := c.mode, c.editID
	c.mu.Unlock()

	submitted := form.Clone()
	var err error
	var verb string
	if mode == ModeEdit {
		if c.ops.Update == nil {
			return fmt.Errorf("dashboard: %s has no update action", c.ops.Kind)
		}
		// Blank secret on edit means "leave unchanged" and must not be sent.
		if c.ops.SecretField != "" && submitted[c.ops.SecretField] == "" {
			delete(submitted, c.ops.SecretField)
		}
		err = c.ops.Update(ctx, id, submitted)
		verb = "updated"
	} else {
		if c.ops.Create == nil {
			return fmt.Errorf("dashboard: %s has no create action", c.ops.Kind)
		}
		err = c.ops.Create(ctx, submitted)
		verb = "created"
	}

	if err != nil {
		c.notifier.Error(placement.UserMessage(err))
		return err
	}

	c.mu.Lock()
	c.open = false
	c.form = nil
	c.mu.Unlock()

	c.notifier.Success(fmt.Sprintf("%s %s", c.ops.Kind, verb))
	c.reload()
	return nil
}

// Delete removes a record after interactive confirmation. Declining the
// confirmation is not an error. When the entity restricts deletion the
// target is checked against a fresh listing before anything is sent.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if c.ops.CanDelete != nil {
		recs, err := c.ops.List(ctx)
		if err != nil {
			c.notifier.Error(placement.UserMessage(err))
			return err
		}
		var target *Record
		for i := range recs {
			if recs[i].ID == id {
				target = &recs[i]
				break
			}
		}
		if target == nil {
			c.notifier.Error(fmt.Sprintf("%s no longer exists; the listing was refreshed", c.ops.Kind))
			return ErrRecordNotFound
		}
		if !c.ops.CanDelete(*target) {
			c.notifier.Error(fmt.Sprintf("This %s cannot be deleted", strings.ToLower(c.ops.Kind)))
			return ErrDeleteNotAllowed
		}
	}
	if c.confirm != nil && !c.confirm.Confirm(fmt.Sprintf("Delete this %s?", c.ops.Kind)) {
		return nil
	}
	if err := c.ops.Delete(ctx, id); err != nil {
		c.notifier.Error(placement.UserMessage(err))
		return err
	}
	msg := c.ops.DeletedMsg
	if msg == "" {
		msg = fmt.Sprintf("%s deleted", c.ops.Kind)
	}
	c.notifier.Success(msg)
	c.reload()
	return nil
}

// ToggleFlag issues the entity's bodyless flag mutation and reloads the
// listing; the server owns the resulting value.
func (c *Controller) ToggleFlag(ctx context.Context, id int64) error {
	if c.ops.Toggle == nil {
		return fmt.Errorf("dashboard: %s has no toggle action", c.ops.Kind)
	}
	if err := c.ops.Toggle(ctx, id); err != nil {
		c.notifier.Error(placement.UserMessage(err))
		return err
	}
	c.notifier.Success("Verification toggled")
	c.reload()
	return nil
}

// AllowDelete reports whether a row exposes the delete control at all.
func (c *Controller) AllowDelete(rec Record) bool {
	if c.ops.CanDelete == nil {
		return true
	}
	return c.ops.CanDelete(rec)
}

// Cancel discards the open form without any network call.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.form = nil
}

// IsOpen reports whether a form surface is currently open.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Mode returns the open form's mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Form returns a copy of the open form state.
func (c *Controller) Form() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return FormState{}
	}
	return c.form.Clone()
}
