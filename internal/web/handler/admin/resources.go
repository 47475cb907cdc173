package admin

import (
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/josephleon/leonweb/internal/db/controller/record"
	"github.com/josephleon/leonweb/internal/db/models"
	"github.com/josephleon/leonweb/internal/metrics"
	"github.com/josephleon/leonweb/internal/upload"
)

const (
	// ContactMessagesSlug is the path segment of the contact message resource.
	ContactMessagesSlug = "contact-messages"

	// BlogPostsSlug is the path segment of the blog post resource.
	BlogPostsSlug = "blog-posts"

	formTimeLayout    = "2006-01-02T15:04"
	displayTimeLayout = "2006-01-02 15:04"

	imageField = "image"
)

type contactMessageForm struct {
	FullName string `form:"fullname" validate:"required,max=100"`
	Email    string `form:"email"    validate:"required,email,max=120"`
	Message  string `form:"message"  validate:"required"`
}

// ContactMessages is the admin resource of contact form submissions.
// Messages are only created through the public form.
func ContactMessages(db *gorm.DB) *Resource[models.ContactMessage] {
	validate := newValidator()

	return &Resource[models.ContactMessage]{
		meta: Meta{
			Slug:  ContactMessagesSlug,
			Title: "Contact messages",
			Fields: []Field{
				{Name: "fullname", Label: "Full name", Kind: KindText, Required: true, List: true},
				{Name: "email", Label: "Email", Kind: KindEmail, Required: true, List: true},
				{Name: "message", Label: "Message", Kind: KindTextarea, Required: true, List: true},
				{Name: "created_at", Label: "Received", Kind: KindDateTime, List: true, ReadOnly: true},
			},
			Ops: OpList | OpEdit | OpDelete,
		},
		store: record.New[models.ContactMessage](db, "created_at DESC, id DESC"),
		id:    func(m *models.ContactMessage) uint64 { return m.ID },
		values: func(m *models.ContactMessage) map[string]string {
			return map[string]string{
				"fullname":   m.FullName,
				"email":      m.Email,
				"message":    m.Message,
				"created_at": formatTime(m.CreatedAt, displayTimeLayout),
			}
		},
		bind: func(c *fiber.Ctx, m *models.ContactMessage) (map[string]string, func(), error) {
			form := new(contactMessageForm)
			if err := c.BodyParser(form); err != nil {
				return nil, nil, fiber.ErrBadRequest
			}

			m.FullName = form.FullName
			m.Email = form.Email
			m.Message = form.Message

			return fieldErrors(validate, form), nil, nil
		},
	}
}

type blogPostForm struct {
	Title     string `form:"title"      validate:"required,max=200"`
	Category  string `form:"category"   validate:"required,max=100"`
	Body      string `form:"body"       validate:"required"`
	CreatedAt string `form:"created_at"`
}

type blogPosts struct {
	uploads  *upload.Store
	validate *validator.Validate
}

// BlogPosts is the admin resource of blog posts. Images go through the upload store.
func BlogPosts(db *gorm.DB, uploads *upload.Store) *Resource[models.BlogPost] {
	bp := &blogPosts{uploads: uploads, validate: newValidator()}

	return &Resource[models.BlogPost]{
		meta: Meta{
			Slug:  BlogPostsSlug,
			Title: "Blog posts",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText, Required: true, List: true},
				{Name: "category", Label: "Category", Kind: KindText, Required: true, List: true},
				{Name: "created_at", Label: "Published", Kind: KindDateTime, List: true},
				{Name: "body", Label: "Body", Kind: KindTextarea, Required: true},
				{Name: imageField, Label: "Image", Kind: KindImage, List: true},
			},
			Ops: OpAll,
		},
		store:   record.New[models.BlogPost](db, "created_at DESC, id DESC"),
		id:      func(p *models.BlogPost) uint64 { return p.ID },
		values:  bp.values,
		bind:    bp.bind,
		saved:   bp.saved,
		deleted: bp.deleted,
	}
}

func (bp *blogPosts) values(p *models.BlogPost) map[string]string {
	return map[string]string{
		"title":      p.Title,
		"category":   p.Category,
		"created_at": formatTime(p.CreatedAt, formTimeLayout),
		"body":       p.Body,
		imageField:   p.Image,
	}
}

// bind validates the text fields first; the image is only stored once they are
// valid, so a rejected form never leaves a file behind.
func (bp *blogPosts) bind(c *fiber.Ctx, p *models.BlogPost) (map[string]string, func(), error) {
	form := new(blogPostForm)
	if err := c.BodyParser(form); err != nil {
		return nil, nil, fiber.ErrBadRequest
	}

	p.Title = form.Title
	p.Category = form.Category
	p.Body = form.Body

	errs := fieldErrors(bp.validate, form)

	if form.CreatedAt != "" {
		createdAt, err := time.ParseInLocation(formTimeLayout, form.CreatedAt, time.Local)
		if err != nil {
			errs["created_at"] = "Use the format YYYY-MM-DDTHH:MM."
		} else {
			p.CreatedAt = createdAt
		}
	}

	if len(errs) > 0 {
		return errs, nil, nil
	}

	fh := formFile(c, imageField)
	if fh == nil {
		return errs, nil, nil
	}

	url, err := bp.uploads.Save(fh)
	switch {
	case errors.Is(err, upload.ErrDisallowedType):
		metrics.Uploads.WithLabelValues(metrics.ResultInvalid).Inc()
		errs[imageField] = "Allowed image types: " + strings.Join(bp.uploads.Allowed(), ", ") + "."

		return errs, nil, nil
	case errors.Is(err, upload.ErrTooLarge):
		metrics.Uploads.WithLabelValues(metrics.ResultInvalid).Inc()
		errs[imageField] = "The image is too large."

		return errs, nil, nil
	case errors.Is(err, upload.ErrEmptyFile):
		metrics.Uploads.WithLabelValues(metrics.ResultInvalid).Inc()
		errs[imageField] = "The image is empty."

		return errs, nil, nil
	case err != nil:
		metrics.Uploads.WithLabelValues(metrics.ResultError).Inc()

		return nil, nil, err
	}

	metrics.Uploads.WithLabelValues(metrics.ResultOK).Inc()
	p.Image = url

	return errs, func() { bp.remove(url) }, nil
}

func (bp *blogPosts) saved(prev, p *models.BlogPost) {
	if prev != nil && prev.Image != "" && prev.Image != p.Image {
		bp.remove(prev.Image)
	}
}

func (bp *blogPosts) deleted(p *models.BlogPost) {
	if p.Image != "" {
		bp.remove(p.Image)
	}
}

func (bp *blogPosts) remove(url string) {
	if err := bp.uploads.Remove(url); err != nil {
		log.Warn().Err(err).Str("image", url).Msg("failed to remove image")
	}
}

// formFile returns the uploaded file of a multipart form, nil if there is none.
func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	files := form.File[name]
	if len(files) == 0 || files[0].Filename == "" {
		return nil
	}

	return files[0]
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return t.Local().Format(layout)
}
