package httpx

import (
	"context"
	"net/http"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
)

func fetchUsers(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.User, error) {
	return ws.Shop.Users.List(ctx, f)
}

//nolint:gochecknoglobals // static column table
var userColumns = []table.Column[model.User]{
	{ID: "name", Label: "نام", Sortable: true, Accessor: func(u model.User) any { return u.Name }},
	{ID: "email", Label: "ایمیل", Sortable: true, Accessor: func(u model.User) any { return u.Email }},
	{ID: "phone", Label: "تلفن", Accessor: func(u model.User) any { return u.Phone }},
	{ID: "role", Label: "نقش", Sortable: true, Align: table.AlignCenter, Accessor: func(u model.User) any { return u.Role }},
}

//nolint:gochecknoglobals // static page metadata
var usersPage = PageMeta{Title: "کاربران", PageTitle: "مدیریت کاربران", CurrentPage: PageUsers}

func usersResource() *crudResource[model.User, *forms.UserDraft] {
	return &crudResource[model.User, *forms.UserDraft]{
		Resource:     resUsers,
		BasePath:     "/users",
		Page:         usersPage,
		Columns:      userColumns,
		Filters:      []string{"search", "role"},
		EmptyMessage: "کاربری یافت نشد",
		Fetch:        fetchUsers,
		Form: FormSpec{
			Template:    "user-form",
			CreateTitle: "افزودن کاربر",
			EditTitle:   "ویرایش کاربر",
		},
		NewDraft: forms.NewUserDraft,
		Parser:   forms.ParseUser,
		Create: func(ctx context.Context, ws *service.Workspace, d *forms.UserDraft) error {
			_, err := ws.Shop.Users.Create(ctx, d.Normalize())
			return err
		},
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.UserDraft) error {
			_, err := ws.Shop.Users.Update(ctx, key, d.Normalize())
			return err
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Users.Remove(ctx, key)
		},
		Label: func(u model.User) string {
			if u.Name != "" {
				return u.Name
			}
			return u.Email
		},
		Msg: crudMessages{
			Created:      "کاربر جدید ایجاد شد",
			Updated:      "کاربر به‌روزرسانی شد",
			Deleted:      "کاربر حذف شد",
			SaveFailed:   "ذخیره کاربر ناموفق بود",
			DeleteFailed: "حذف کاربر ناموفق بود",
			DeleteTitle:  "حذف کاربر",
			DeletePrompt: func(name string) string { return "حساب کاربری «" + name + "» حذف شود؟" },
		},
	}
}

func notifySpec(key string) FormSpec {
	return FormSpec{
		Template:    "notification-form",
		Resource:    resUsers,
		BasePath:    "/users",
		PageMeta:    usersPage,
		CreateTitle: "ارسال پیام به کاربر",
		Action:      "/users/" + key + "/notify",
	}
}

// UserNotifyForm opens the "send message" dialog for one user.
// GET /users/{id}/notify.
func (h *UIHandlers) UserNotifyForm(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("id")
	ShowDialog(DialogOpts[model.User, *forms.NotificationDraft]{
		Handler:  h,
		W:        w,
		R:        r,
		Spec:     notifySpec(key),
		Key:      key,
		Fetch:    fetchUsers,
		NewDraft: forms.NewNotificationDraft,
	})
}

// UserNotify sends a message to the user's inbox.
// POST /users/{id}/notify.
func (h *UIHandlers) UserNotify(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("id")
	HandleForm(FormHandlerOpts[*forms.NotificationDraft]{
		Handler: h,
		W:       w,
		R:       r,
		Spec:    notifySpec(key),
		Key:     key,
		Parser:  forms.ParseNotification,
		Submit: func(ctx context.Context, ws *service.Workspace, key string, d *forms.NotificationDraft) error {
			return ws.Shop.Users.SendNotification(ctx, key, d.Normalize())
		},
		SuccessMessage: "پیام برای کاربر ارسال شد",
		ErrorMessage:   "ارسال پیام ناموفق بود",
	})
}
