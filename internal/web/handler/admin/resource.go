package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/josephleon/leonweb/internal/db/controller/record"
	"github.com/josephleon/leonweb/internal/metrics"
	"github.com/josephleon/leonweb/internal/web/handler"
	"github.com/josephleon/leonweb/internal/web/navigation"
)

const (
	pageSize = 20

	opNameCreate = "create"
	opNameUpdate = "update"
	opNameDelete = "delete"
)

// Op is a set of operations a resource allows.
type Op uint8

// Operations.
const (
	OpList Op = 1 << iota
	OpCreate
	OpEdit
	OpDelete

	OpAll = OpList | OpCreate | OpEdit | OpDelete
)

// Kind selects the form control of a field.
type Kind string

// Field kinds.
const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTextarea Kind = "textarea"
	KindDateTime Kind = "datetime-local"
	KindImage    Kind = "image"
)

// Field describes one column of a resource.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	// List shows the field as a column of the list view.
	List bool
	// ReadOnly fields are displayed but never bound from the form.
	ReadOnly bool
}

// Meta is the static declaration of an admin resource.
type Meta struct {
	Slug   string
	Title  string
	Fields []Field
	Ops    Op
}

// Allows reports whether op is enabled for the resource.
func (m Meta) Allows(op Op) bool {
	return m.Ops&op == op
}

// Path returns the base path of the resource.
func (m Meta) Path() string {
	return handler.AdminPath + "/" + m.Slug
}

// Columns returns the fields shown in the list view.
func (m Meta) Columns() []Field {
	cols := make([]Field, 0, len(m.Fields))
	for _, f := range m.Fields {
		if f.List {
			cols = append(cols, f)
		}
	}

	return cols
}

// Row is one record of the list view.
type Row struct {
	ID    uint64
	Cells []string
}

// Registrar is an admin resource the service can count and route.
type Registrar interface {
	Meta() Meta
	Count(ctx context.Context) (int64, error)
	Register(router fiber.Router, guard fiber.Handler, menu []Meta)
}

// BindFunc copies the submitted form onto rec. Invalid input is reported per field
// in errs, err is kept for failures the user can not fix. undo, if not nil,
// reverts side effects of the binding when rec can not be stored.
type BindFunc[T any] func(c *fiber.Ctx, rec *T) (errs map[string]string, undo func(), err error)

// Resource serves the list and form pages of model T.
type Resource[T any] struct {
	meta   Meta
	store  *record.Store[T]
	menu   []Meta
	id     func(*T) uint64
	values func(*T) map[string]string
	bind   BindFunc[T]
	// saved runs after a successful create or update, prev is nil on create.
	saved func(prev, rec *T)
	// deleted runs after a successful delete.
	deleted func(rec *T)
}

// Meta implements Registrar.
func (r *Resource[T]) Meta() Meta {
	return r.meta
}

// Count implements Registrar.
func (r *Resource[T]) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}

// Register adds the routes of the allowed operations, all behind guard.
func (r *Resource[T]) Register(router fiber.Router, guard fiber.Handler, menu []Meta) {
	r.menu = menu
	base := r.meta.Path()

	if r.meta.Allows(OpList) {
		router.Get(base, guard, r.List)
	}

	if r.meta.Allows(OpCreate) {
		router.Get(base+"/new", guard, r.New)
		router.Post(base, guard, r.Create)
	}

	if r.meta.Allows(OpEdit) {
		router.Get(base+"/:id/edit", guard, r.Edit)
		router.Post(base+"/:id", guard, r.Update)
	}

	if r.meta.Allows(OpDelete) {
		router.Post(base+"/:id/delete", guard, r.Delete)
	}
}

// List renders one page of records.
func (r *Resource[T]) List(c *fiber.Ctx) error {
	page, err := r.store.List(c.UserContext(), c.QueryInt("page", 1), pageSize)
	if err != nil {
		return err
	}

	cols := r.meta.Columns()
	rows := make([]Row, 0, len(page.Items))

	for i := range page.Items {
		vals := r.values(&page.Items[i])
		row := Row{ID: r.id(&page.Items[i]), Cells: make([]string, 0, len(cols))}

		for _, col := range cols {
			row.Cells = append(row.Cells, vals[col.Name])
		}

		rows = append(rows, row)
	}

	return c.Render("admin/list", fiber.Map{
		"Title":     r.meta.Title,
		"Meta":      r.meta,
		"Resources": r.menu,
		"Columns":   cols,
		"Rows":      rows,
		"Page":      page.Page,
		"Pages":     page.TotalPages,
		"Total":     page.TotalItems,
		"HasPrev":   page.HasPrev(),
		"HasNext":   page.HasNext(),
		"CanCreate": r.meta.Allows(OpCreate),
		"CanEdit":   r.meta.Allows(OpEdit),
		"CanDelete": r.meta.Allows(OpDelete),
		"Nav": navigation.Admin(handler.AdminPath, r.meta.Title, r.meta.Slug).
			Current(r.meta.Title, r.meta.Path()),
	}, handler.AdminLayout)
}

// New renders the empty create form.
func (r *Resource[T]) New(c *fiber.Ctx) error {
	return r.renderForm(c, fiber.StatusOK, new(T), nil, true)
}

// Create binds and stores a new record.
func (r *Resource[T]) Create(c *fiber.Ctx) error {
	rec := new(T)

	errs, undo, err := r.bind(c, rec)
	if err != nil {
		return err
	}

	if len(errs) > 0 {
		return r.renderForm(c, fiber.StatusBadRequest, rec, errs, true)
	}

	if err = r.store.Create(c.UserContext(), rec); err != nil {
		runUndo(undo)

		return err
	}

	if r.saved != nil {
		r.saved(nil, rec)
	}

	r.mutated(c, opNameCreate, r.id(rec))

	return c.Redirect(r.meta.Path())
}

// Edit renders the form of an existing record.
func (r *Resource[T]) Edit(c *fiber.Ctx) error {
	rec, err := r.load(c)
	if err != nil {
		return err
	}

	return r.renderForm(c, fiber.StatusOK, rec, nil, false)
}

// Update binds the form onto an existing record and saves it. Nothing is
// written when the form has errors.
func (r *Resource[T]) Update(c *fiber.Ctx) error {
	rec, err := r.load(c)
	if err != nil {
		return err
	}

	prev := *rec

	errs, undo, err := r.bind(c, rec)
	if err != nil {
		return err
	}

	if len(errs) > 0 {
		return r.renderForm(c, fiber.StatusBadRequest, rec, errs, false)
	}

	if err = r.store.Update(c.UserContext(), rec); err != nil {
		runUndo(undo)

		return err
	}

	if r.saved != nil {
		r.saved(&prev, rec)
	}

	r.mutated(c, opNameUpdate, r.id(rec))

	return c.Redirect(r.meta.Path())
}

// Delete removes a record.
func (r *Resource[T]) Delete(c *fiber.Ctx) error {
	rec, err := r.load(c)
	if err != nil {
		return err
	}

	id := r.id(rec)

	if err = r.store.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return fiber.ErrNotFound
		}

		return err
	}

	if r.deleted != nil {
		r.deleted(rec)
	}

	r.mutated(c, opNameDelete, id)

	return c.Redirect(r.meta.Path())
}

func (r *Resource[T]) load(c *fiber.Ctx) (*T, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, fiber.ErrNotFound
	}

	rec, err := r.store.Get(c.UserContext(), uint64(id))
	if errors.Is(err, record.ErrNotFound) {
		return nil, fiber.ErrNotFound
	}

	return rec, err
}

func (r *Resource[T]) renderForm(c *fiber.Ctx, status int, rec *T, errs map[string]string, isNew bool) error {
	action := r.meta.Path()
	title := "New " + r.meta.Title

	if !isNew {
		action = r.meta.Path() + "/" + utoa(r.id(rec))
		title = "Edit " + r.meta.Title
	}

	if errs == nil {
		errs = map[string]string{}
	}

	return c.Status(status).Render("admin/form", fiber.Map{
		"Title":     title,
		"Meta":      r.meta,
		"Resources": r.menu,
		"Fields":    r.meta.Fields,
		"Values":    r.values(rec),
		"Errors":    errs,
		"Action":    action,
		"IsNew":     isNew,
		"Multipart": r.meta.hasKind(KindImage),
		"Nav": navigation.Admin(handler.AdminPath, title, r.meta.Slug).
			Crumb(r.meta.Title, r.meta.Path()).
			Current(title, action),
	}, handler.AdminLayout)
}

func (r *Resource[T]) mutated(c *fiber.Ctx, op string, id uint64) {
	metrics.RecordMutations.WithLabelValues(r.meta.Slug, op).Inc()

	ev := log.Info().Str("resource", r.meta.Slug).Str("operation", op).Uint64("id", id)
	if admin, ok := c.Locals(handler.CurrentAdminLocal).(fmt.Stringer); ok {
		ev = ev.Str("admin", admin.String())
	}

	ev.Msg("admin record changed")
}

func (m Meta) hasKind(kind Kind) bool {
	for _, f := range m.Fields {
		if f.Kind == kind {
			return true
		}
	}

	return false
}

func runUndo(undo func()) {
	if undo != nil {
		undo()
	}
}

func utoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
