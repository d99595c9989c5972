package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/richtext"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
	"github.com/target/shop-admin/internal/ui"
)

func fetchBlogs(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.Blog, error) {
	return ws.Shop.Blogs.List(ctx, f)
}

func fetchAds(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.Ad, error) {
	return ws.Shop.Ads.List(ctx, f)
}

func fetchBanners(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.Banner, error) {
	return ws.Shop.Banners.List(ctx, f)
}

//nolint:gochecknoglobals // static column tables
var (
	blogColumns = []table.Column[model.Blog]{
		{ID: "title", Label: "عنوان", Sortable: true, Accessor: func(b model.Blog) any { return b.Title }},
		{ID: "tags", Label: "برچسب‌ها"},
		{ID: "createdAt", Label: "تاریخ ایجاد", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: blogCreated},
		{ID: "published", Label: "وضعیت", Align: table.AlignCenter},
	}
	adColumns = []table.Column[model.Ad]{
		{ID: "image", Label: "تصویر", Align: table.AlignCenter},
		{ID: "title", Label: "عنوان", Sortable: true, Accessor: func(a model.Ad) any { return a.Title }},
		{ID: "placement", Label: "جایگاه", Sortable: true, Accessor: func(a model.Ad) any { return string(a.Placement) }},
		{ID: "priority", Label: "اولویت", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(a model.Ad) any { return a.Priority.Float() }},
		{ID: "active", Label: "وضعیت", Align: table.AlignCenter},
	}
	bannerColumns = []table.Column[model.Banner]{
		{ID: "image", Label: "تصویر", Align: table.AlignCenter},
		{ID: "title", Label: "عنوان", Sortable: true, Accessor: func(b model.Banner) any { return b.Title }},
		{ID: "placement", Label: "جایگاه", Sortable: true, Accessor: func(b model.Banner) any { return string(b.Placement) }},
		{ID: "order", Label: "ترتیب", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(b model.Banner) any { return b.Order.Float() }},
		{ID: "isActive", Label: "وضعیت", Align: table.AlignCenter},
	}
)

func blogCreated(b model.Blog) any {
	if b.CreatedAt == nil {
		return nil
	}
	return float64(b.CreatedAt.Unix())
}

func blogsResource() *crudResource[model.Blog, *forms.BlogDraft] {
	return &crudResource[model.Blog, *forms.BlogDraft]{
		Resource:     resBlogs,
		BasePath:     "/blogs",
		Page:         PageMeta{Title: "مقالات", PageTitle: "مدیریت مقالات", CurrentPage: PageBlogs},
		Columns:      blogColumns,
		Filters:      []string{"search"},
		EmptyMessage: "مقاله‌ای ثبت نشده است",
		Fetch:        fetchBlogs,
		Form: FormSpec{
			Template:    "blog-form",
			CreateTitle: "نوشتن مقاله جدید",
			EditTitle:   "ویرایش مقاله",
			Multipart:   true,
			Extra: func(_ context.Context, _ *service.Workspace, key string) map[string]any {
				return map[string]any{"Tools": editorTools(nil, 0), "Editor": blogEditorKey(key)}
			},
			Opened: func(ws *service.Workspace, key string, d forms.Draft) {
				if blog, ok := d.(*forms.BlogDraft); ok {
					ws.Editors().Reset(blogEditorKey(key), blog.Content)
				}
			},
			Saved: func(ws *service.Workspace, key string) {
				ws.Editors().Close(blogEditorKey(key))
			},
		},
		NewDraft: forms.NewBlogDraft,
		Parser:   forms.ParseBlog,
		Create: func(ctx context.Context, ws *service.Workspace, d *forms.BlogDraft) error {
			_, err := ws.Shop.Blogs.Create(ctx, d.Normalize(), d.Uploads()...)
			return err
		},
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.BlogDraft) error {
			_, err := ws.Shop.Blogs.Update(ctx, key, d.Normalize(), d.Uploads()...)
			return err
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Blogs.Remove(ctx, key)
		},
		Label: func(b model.Blog) string { return b.Title },
		Msg: crudMessages{
			Created:      "مقاله ایجاد شد",
			Updated:      "مقاله ویرایش شد",
			Deleted:      "مقاله حذف شد",
			SaveFailed:   "ذخیره مقاله ناموفق بود",
			DeleteFailed: "حذف مقاله ناموفق بود",
			DeleteTitle:  "حذف مقاله",
			DeletePrompt: func(title string) string { return "مقاله «" + title + "» حذف شود؟" },
		},
	}
}

func adsResource() *crudResource[model.Ad, *forms.AdDraft] {
	return &crudResource[model.Ad, *forms.AdDraft]{
		Resource:     resAds,
		BasePath:     "/ads",
		Page:         PageMeta{Title: "تبلیغات", PageTitle: "مدیریت تبلیغات", CurrentPage: PageAds},
		Columns:      adColumns,
		EmptyMessage: "تبلیغی ثبت نشده است",
		Fetch:        fetchAds,
		Form: FormSpec{
			Template:    "ad-form",
			CreateTitle: "افزودن تبلیغ",
			EditTitle:   "ویرایش تبلیغ",
			Multipart:   true,
		},
		NewDraft: forms.NewAdDraft,
		Parser:   forms.ParseAd,
		Create: func(ctx context.Context, ws *service.Workspace, d *forms.AdDraft) error {
			_, err := ws.Shop.Ads.Create(ctx, d.Normalize(), d.Uploads()...)
			return err
		},
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.AdDraft) error {
			_, err := ws.Shop.Ads.Update(ctx, key, d.Normalize(), d.Uploads()...)
			return err
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Ads.Remove(ctx, key)
		},
		Label: func(a model.Ad) string { return a.Title },
		Msg: crudMessages{
			Created:      "تبلیغ جدید ذخیره شد",
			Updated:      "تبلیغ ویرایش شد",
			Deleted:      "تبلیغ حذف شد",
			SaveFailed:   "ذخیره تبلیغ ناموفق بود",
			DeleteFailed: "حذف تبلیغ ناموفق بود",
			DeleteTitle:  "حذف تبلیغ",
			DeletePrompt: func(title string) string { return "تبلیغ «" + title + "» حذف شود؟" },
		},
	}
}

func bannersResource() *crudResource[model.Banner, *forms.BannerDraft] {
	return &crudResource[model.Banner, *forms.BannerDraft]{
		Resource:     resBanners,
		BasePath:     "/banners",
		Page:         PageMeta{Title: "بنرها", PageTitle: "مدیریت بنرها", CurrentPage: PageBanners},
		Columns:      bannerColumns,
		EmptyMessage: "بنری ثبت نشده است",
		Fetch:        fetchBanners,
		Form: FormSpec{
			Template:    "banner-form",
			CreateTitle: "افزودن بنر",
			EditTitle:   "ویرایش بنر",
			Multipart:   true,
		},
		NewDraft: forms.NewBannerDraft,
		Parser:   forms.ParseBanner,
		Create: func(ctx context.Context, ws *service.Workspace, d *forms.BannerDraft) error {
			_, err := ws.Shop.Banners.Create(ctx, d.Normalize(), d.Uploads()...)
			return err
		},
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.BannerDraft) error {
			_, err := ws.Shop.Banners.Update(ctx, key, d.Normalize(), d.Uploads()...)
			return err
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Banners.Remove(ctx, key)
		},
		Label: func(b model.Banner) string { return b.Title },
		Msg: crudMessages{
			Created:      "بنر ثبت شد",
			Updated:      "بنر به‌روزرسانی شد",
			Deleted:      "بنر حذف شد",
			SaveFailed:   "ثبت بنر ناموفق بود",
			DeleteFailed: "حذف بنر ناموفق بود",
			DeleteTitle:  "حذف بنر",
			DeletePrompt: func(title string) string { return "بنر «" + title + "» حذف شود؟" },
		},
	}
}

// Editor actions posted by the blog form toolbar.
const (
	editorApply    = "apply"
	editorMarkdown = "markdown"
	editorUndo     = "undo"
	editorRedo     = "redo"
)

// blogEditorKey names the editor of one blog dialog in the workspace.
func blogEditorKey(key string) string {
	if key == "" {
		return "blogs:new"
	}
	return "blogs:" + key
}

// editorTool is one formatting button and whether it applies to the selected block.
type editorTool struct {
	Cmd    richtext.Command
	Active bool
}

func editorTools(ed *richtext.Editor, block int) []editorTool {
	tools := make([]editorTool, 0, len(richtext.Commands))
	for _, cmd := range richtext.Commands {
		tools = append(tools, editorTool{Cmd: cmd, Active: ed != nil && ed.IsActive(cmd, block)})
	}
	return tools
}

// BlogEditor applies one toolbar action to the blog body and returns the
// re-rendered editor. The editor, with its undo history, lives in the
// workspace until the dialog is saved or reopened. Text typed into the body
// since the last action is recorded as one history step first. Nothing is
// sent to the shop API. POST /blogs/editor.
func (h *UIHandlers) BlogEditor(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	action := r.PostFormValue("action")
	switch action {
	case editorApply, editorMarkdown, editorUndo, editorRedo, "":
	default:
		http.Error(w, "unknown editor action", http.StatusBadRequest)
		return
	}
	key := strings.TrimSpace(r.PostFormValue("editor"))
	if key == "" {
		key = blogEditorKey("")
	}
	block, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("block")))
	if err != nil || block < 0 {
		block = 0
	}
	posted, typed := r.PostForm["content"]

	var (
		editErr error
		data    map[string]any
	)
	ws.Editors().With(key, r.PostFormValue("content"), func(ed *richtext.Editor) {
		if typed && richtext.Sanitize(posted[0]) != ed.Content() {
			ed.Edit(posted[0])
		}
		switch action {
		case editorMarkdown:
			var html string
			if html, editErr = richtext.FromMarkdown(r.PostFormValue("markdown")); editErr == nil {
				ed.Edit(html)
			}
		case editorUndo:
			ed.Undo()
		case editorRedo:
			ed.Redo()
		default:
			editErr = ed.Apply(richtext.Command(r.PostFormValue("cmd")), block)
		}
		data = map[string]any{
			"Content": ed.Content(),
			"Block":   block,
			"Blocks":  ed.Blocks(),
			"Tools":   editorTools(ed, block),
			"CanUndo": ed.CanUndo(),
			"CanRedo": ed.CanRedo(),
		}
	})
	if editErr != nil {
		h.logger().InfoContext(r.Context(), "editor command rejected", "error", editErr)
		HTMX(w).Toast(ui.Warning("این قالب‌بندی روی بخش انتخاب‌شده قابل اعمال نیست"))
	}

	if err := h.T.Render(w, "blog-editor", data); err != nil {
		h.logger().ErrorContext(r.Context(), "render editor failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
