package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
)

func fetchReviews(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.Review, error) {
	return ws.Shop.Reviews.List(ctx, f)
}

func fetchContact(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.ContactMessage, error) {
	return ws.Shop.Contact.List(ctx, f)
}

//nolint:gochecknoglobals // static column tables
var (
	reviewColumns = []table.Column[model.Review]{
		{ID: "product", Label: "محصول", Sortable: true, Accessor: func(r model.Review) any { return r.Product.Label() }},
		{ID: "name", Label: "نام کاربر", Sortable: true, Accessor: func(r model.Review) any { return r.Name }},
		{ID: "rating", Label: "امتیاز", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(r model.Review) any { return r.Rating.Float() }},
		{ID: "comment", Label: "متن نظر"},
		{ID: "status", Label: "وضعیت", Sortable: true, Align: table.AlignCenter, Accessor: func(r model.Review) any { return string(r.Status) }},
	}
	contactColumns = []table.Column[model.ContactMessage]{
		{ID: "name", Label: "فرستنده", Sortable: true, Accessor: func(m model.ContactMessage) any { return m.Name }},
		{ID: "subject", Label: "موضوع", Sortable: true, Accessor: func(m model.ContactMessage) any { return m.Subject }},
		{ID: "createdAt", Label: "تاریخ", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(m model.ContactMessage) any { return float64(m.CreatedAt.Unix()) }},
		{ID: "status", Label: "وضعیت", Sortable: true, Align: table.AlignCenter, Accessor: func(m model.ContactMessage) any { return string(m.Status) }},
	}
)

// reviewsResource serves /reviews. Reviews are written by customers; the
// panel only moderates and deletes them.
func reviewsResource(logger *slog.Logger) *crudResource[model.Review, *forms.ReviewModerationDraft] {
	return &crudResource[model.Review, *forms.ReviewModerationDraft]{
		Resource:     resReviews,
		BasePath:     "/reviews",
		Page:         PageMeta{Title: "نظرات", PageTitle: "مدیریت نظرات کاربران", CurrentPage: PageReviews},
		Columns:      reviewColumns,
		Filters:      []string{"status", "productId"},
		EmptyMessage: "نظری برای نمایش وجود ندارد",
		Fetch:        fetchReviews,
		Form: FormSpec{
			Template:  "review-form",
			EditTitle: "بررسی نظر",
		},
		NewDraft: forms.NewReviewModerationDraft,
		Parser:   forms.ParseReviewModeration,
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.ReviewModerationDraft) error {
			_, err := ws.Shop.Reviews.Update(ctx, key, d.Normalize())
			return err
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Reviews.Remove(ctx, key)
		},
		Msg: crudMessages{
			Updated:      "وضعیت نظر به‌روزرسانی شد",
			Deleted:      "نظر حذف شد",
			SaveFailed:   "به‌روزرسانی وضعیت نظر ناموفق بود",
			DeleteFailed: "حذف نظر ناموفق بود",
			DeleteTitle:  "حذف نظر",
		},
		Enrich: func(ctx context.Context, b *TemplateDataBuilder, _ table.View[model.Review]) {
			if ws, ok := GetWorkspaceFromContext(ctx); ok {
				b.With("Products", selectOptions(ctx, ws, logger, resProducts, fetchProducts))
			}
		},
	}
}

// contactResource serves /contact-messages as /contact. Messages arrive from
// the storefront; the panel changes their status, replies and deletes.
func contactResource() *crudResource[model.ContactMessage, *forms.ContactReplyDraft] {
	return &crudResource[model.ContactMessage, *forms.ContactReplyDraft]{
		Resource:     resContact,
		BasePath:     "/contact",
		Page:         PageMeta{Title: "پیام‌ها", PageTitle: "پیام‌های تماس با ما", CurrentPage: PageContact},
		Columns:      contactColumns,
		Filters:      []string{"status", "search"},
		EmptyMessage: "پیامی دریافت نشده است",
		Fetch:        fetchContact,
		Form: FormSpec{
			Template:  "contact-form",
			EditTitle: "مشاهده پیام",
			Extra: func(ctx context.Context, ws *service.Workspace, key string) map[string]any {
				msg, found, err := findRecord(ctx, ws, resContact, fetchContact, key)
				if err != nil || !found {
					return nil
				}
				return map[string]any{"Message": msg}
			},
		},
		NewDraft: forms.NewContactReplyDraft,
		Parser:   forms.ParseContactReply,
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.ContactReplyDraft) error {
			return ws.Shop.Contact.UpdateStatus(ctx, key, d.Normalize())
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Contact.Remove(ctx, key)
		},
		Label: func(m model.ContactMessage) string {
			if m.Subject != "" {
				return m.Subject
			}
			return m.Name
		},
		Msg: crudMessages{
			Updated:      "وضعیت پیام به‌روزرسانی شد",
			Deleted:      "پیام حذف شد",
			SaveFailed:   "به‌روزرسانی پیام ناموفق بود",
			DeleteFailed: "حذف پیام ناموفق بود",
			DeleteTitle:  "حذف پیام",
			DeletePrompt: func(subject string) string { return "پیام «" + subject + "» حذف شود؟" },
		},
	}
}

// ContactView opens a message. A new message is marked read first; a failed
// mark is logged and the message opens anyway.
// GET /contact/{id}.
func (h *UIHandlers) ContactView(c *crudResource[model.ContactMessage, *forms.ContactReplyDraft]) http.HandlerFunc {
	open := c.Edit(h)
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.workspace(w, r)
		if !ok {
			return
		}
		key := r.PathValue("id")
		msg, found, err := findRecord(r.Context(), ws, resContact, fetchContact, key)
		if err == nil && found && msg.Status == model.ContactNew {
			err = ws.Mutator.Run(r.Context(), func(ctx context.Context) error {
				return ws.Shop.Contact.UpdateStatus(ctx, key, model.ContactStatusUpdate{Status: model.ContactRead})
			}, resContact)
			if err != nil {
				if isAuthFailure(err) {
					h.handleAuthFailure(w, r, ws)
					return
				}
				h.logger().WarnContext(r.Context(), "mark contact message read failed", "key", key, "error", err)
			}
		}
		open(w, r)
	}
}
