package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/mocks"
	"github.com/target/shop-admin/internal/ports"
)

func TestProductsList(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Products.Items = []model.Product{
		{Ref: ref("p1"), Name: "شیر پرچرب", Price: 42000},
		{Ref: ref("p2"), Name: "ماست کم‌چرب", Price: 35000},
	}

	w := env.do(t, request{Path: "/products"})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "شیر پرچرب")
	assert.Contains(t, body, "ماست کم‌چرب")
	assert.Contains(t, body, `/products/p1/edit`)

	// htmx navigation gets only the content area, served from the cache.
	w = env.do(t, request{Path: "/products", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<html")
	assert.Contains(t, w.Body.String(), "شیر پرچرب")
	assert.Equal(t, 1, env.shop.Products.listCalls())
}

func TestProductsList_SortsWithLocaleCollation(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Products.Items = []model.Product{
		{Ref: ref("p1"), Name: "شیر"},
		{Ref: ref("p2"), Name: "ماست"},
		{Ref: ref("p3"), Name: "پنیر"},
	}

	w := env.do(t, request{Path: "/products?orderBy=name&order=desc", HTMX: true})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	iMast, iShir, iPanir := strings.Index(body, "ماست"), strings.Index(body, "شیر"), strings.Index(body, "پنیر")
	require.True(t, iMast >= 0 && iShir >= 0 && iPanir >= 0)
	assert.Less(t, iMast, iShir)
	assert.Less(t, iShir, iPanir)
}

func TestProductsList_Paginates(t *testing.T) {
	env := newTestEnv(t)
	for i := 1; i <= 12; i++ {
		env.shop.Products.Items = append(env.shop.Products.Items,
			model.Product{Ref: ref(fmt.Sprintf("p%02d", i)), Name: fmt.Sprintf("item-%02d", i)})
	}

	w := env.do(t, request{Path: "/products?page=3&size=5", HTMX: true})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "item-11")
	assert.Contains(t, body, "item-12")
	assert.NotContains(t, body, "item-10")
	assert.NotContains(t, body, "item-01")
}

func TestProductsList_ForwardsFilters(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, request{Path: "/products?search=" + url.QueryEscape("شیر") + "&page=2"})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.shop.Products.Filters, 1)
	assert.Equal(t, ports.Filters{"search": "شیر"}, env.shop.Products.Filters[0])
}

func TestList_FetchFailureShowsAlert(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Categories.ListErr = upstreamErr("boom")

	w := env.do(t, request{Path: "/categories"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgLoadFailed)
}

func TestList_RefreshBypassesCache(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Products.Items = []model.Product{{Ref: ref("p1"), Name: "شیر پرچرب"}}

	env.do(t, request{Path: "/products", HTMX: true})
	w := env.do(t, request{Path: "/products", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.shop.Products.listCalls())
	assert.Contains(t, w.Body.String(), "refresh=1")

	env.shop.Products.Items = append(env.shop.Products.Items, model.Product{Ref: ref("p2"), Name: "ماست"})
	w = env.do(t, request{Path: "/products?refresh=1", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, env.shop.Products.listCalls())
	assert.Contains(t, w.Body.String(), "ماست")
	assert.Contains(t, w.Body.String(), `hx-push-url="/products?page=1&amp;size=all"`, "refresh is not pushed to history")
}

func TestList_FailedRefetchKeepsLastData(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Categories.Items = []model.Category{{Ref: ref("c1"), Name: "لبنیات"}}

	w := env.do(t, request{Path: "/categories", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), msgLoadFailed)

	env.shop.Categories.ListErr = upstreamErr("boom")
	w = env.do(t, request{Path: "/categories?refresh=1", HTMX: true})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, msgLoadFailed)
	assert.Contains(t, body, msgShowingCached)
	assert.Contains(t, body, "لبنیات")
}

func TestList_DefaultPageSize(t *testing.T) {
	env := newTestEnv(t)
	for i := 1; i <= 12; i++ {
		env.shop.Products.Items = append(env.shop.Products.Items,
			model.Product{Ref: ref(fmt.Sprintf("p%02d", i)), Name: fmt.Sprintf("item-%02d", i)})
		env.shop.Orders.Items = append(env.shop.Orders.Items, model.Order{Ref: ref(fmt.Sprintf("order-%02d", i))})
	}

	w := env.do(t, request{Path: "/products", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "item-12", "catalog lists show every row")

	w = env.do(t, request{Path: "/orders", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "order-10")
	assert.NotContains(t, w.Body.String(), "order-11", "orders page by ten")
}

func TestList_RejectedTokenLogsOut(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Products.ListErr = unauthorizedErr()

	w := env.do(t, request{Path: "/products"})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fproducts", w.Header().Get("Location"))
	assert.Contains(t, env.workspaces.forgets, testSID)
	assert.Empty(t, env.workspaces.store.Snapshot(testSID).Token)
	assert.NotNil(t, flashFrom(w))
}

func TestCategoryDialog(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Categories.Items = []model.Category{{Ref: ref("c1"), Name: "لبنیات", Order: 3, IsActive: true}}

	t.Run("new", func(t *testing.T) {
		w := env.do(t, request{Path: "/categories/new", HTMX: true})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/categories"`)
		assert.NotContains(t, w.Body.String(), "<html")
	})

	t.Run("edit", func(t *testing.T) {
		w := env.do(t, request{Path: "/categories/c1/edit", HTMX: true})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/categories/c1"`)
		assert.Contains(t, w.Body.String(), `value="لبنیات"`)
	})

	t.Run("edit of a missing record", func(t *testing.T) {
		w := env.do(t, request{Path: "/categories/gone/edit"})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/categories", w.Header().Get("Location"))
		assert.NotNil(t, flashFrom(w))
	})

	t.Run("plain request gets the full page", func(t *testing.T) {
		w := env.do(t, request{Path: "/categories/c1/edit"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<html")
		assert.Contains(t, w.Body.String(), `action="/categories/c1"`)
	})
}

func TestCategoryCreate(t *testing.T) {
	env := newTestEnv(t)

	// Prime the list cache so the mutation has something to invalidate.
	env.do(t, request{Path: "/categories"})
	require.Equal(t, 1, env.shop.Categories.listCalls())

	w := env.do(t, request{
		Method: http.MethodPost,
		Path:   "/categories",
		Form:   url.Values{"name": {" لبنیات "}, "order": {"۲"}, "isActive": {"on"}},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/categories", w.Header().Get("Location"))
	assert.NotNil(t, flashFrom(w))
	require.Len(t, env.shop.Categories.Created, 1)
	assert.Equal(t, forms.CategoryPayload{Name: "لبنیات", Order: 2, IsActive: true}, env.shop.Categories.Created[0])

	env.do(t, request{Path: "/categories"})
	assert.Equal(t, 2, env.shop.Categories.listCalls(), "the list refetches after a write")
}

func TestCategoryCreate_HTMXRedirectsToCurrentList(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, request{
		Method: http.MethodPost,
		Path:   "/categories",
		HTMX:   true,
		Form:   url.Values{"name": {"نوشیدنی"}, "return": {"/categories?page=2"}},
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/categories?page=2", w.Header().Get("Hx-Redirect"))
}

func TestCategoryCreate_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{"name": {""}, "order": {"abc"}}

	w := env.do(t, request{Method: http.MethodPost, Path: "/categories", Form: form})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), msgFixBelow)

	w = env.do(t, request{Method: http.MethodPost, Path: "/categories", Form: form, HTMX: true})
	assert.Equal(t, http.StatusOK, w.Code, "htmx only swaps 2xx responses")
	assert.Contains(t, w.Body.String(), `action="/categories"`)

	assert.Empty(t, env.shop.Categories.Created)
}

func TestCategoryUpdate_UpstreamErrorKeepsDialogOpen(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Categories.UpdateErr = upstreamErr("نام تکراری است")

	w := env.do(t, request{
		Method: http.MethodPost,
		Path:   "/categories/c1",
		Form:   url.Values{"name": {"لبنیات"}},
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `action="/categories/c1"`)

	w = env.do(t, request{
		Method: http.MethodPost,
		Path:   "/categories/c1",
		HTMX:   true,
		Form:   url.Values{"name": {"لبنیات"}},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "showToast")
	assert.Empty(t, env.shop.Categories.Updated)
}

func TestProductDelete(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Products.Items = []model.Product{{Ref: ref("p1"), Name: "شیر پرچرب"}}

	w := env.do(t, request{Path: "/products/p1/delete", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "«شیر پرچرب»")
	assert.Contains(t, w.Body.String(), `action="/products/p1/delete"`)

	w = env.do(t, request{Method: http.MethodPost, Path: "/products/p1/delete", Form: url.Values{}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))
	assert.Equal(t, []string{"p1"}, env.shop.Products.Removed)
}

func TestProductDelete_FailureReRendersPrompt(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Products.RemoveErr = upstreamErr("")

	w := env.do(t, request{Method: http.MethodPost, Path: "/products/p1/delete", Form: url.Values{}})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `action="/products/p1/delete"`)
	assert.Contains(t, w.Body.String(), "حذف محصول ناموفق بود")
}

func TestDialogFormsLockWhileSubmitting(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Products.Items = []model.Product{{Ref: ref("p1"), Name: "شیر پرچرب"}}

	for _, path := range []string{"/products/new", "/products/p1/edit", "/products/p1/delete"} {
		t.Run(path, func(t *testing.T) {
			for _, htmx := range []bool{true, false} {
				w := env.do(t, request{Path: path, HTMX: htmx})
				require.Equal(t, http.StatusOK, w.Code)
				body := w.Body.String()
				assert.Contains(t, body, `hx-sync="this:drop"`)
				assert.Contains(t, body, `hx-disabled-elt="find button[type=submit], find [data-dismiss]"`)
			}
		})
	}

	t.Run("failed submit keeps the lock", func(t *testing.T) {
		env.shop.Products.RemoveErr = upstreamErr("")
		w := env.do(t, request{Method: http.MethodPost, Path: "/products/p1/delete", Form: url.Values{}})
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), `hx-sync="this:drop"`)
	})
}

func TestLayoutShowsLoadingIndicator(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, request{Path: "/products"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hx-indicator="#loading"`)
	assert.Contains(t, w.Body.String(), `id="loading" class="htmx-indicator loading-bar"`)

	w = env.do(t, request{Path: "/products", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `id="loading"`, "fragments leave the indicator in place")
}

func TestOrders(t *testing.T) {
	created := time.Date(2024, 11, 20, 9, 30, 0, 0, time.UTC)
	newEnv := func(t *testing.T) *testEnv {
		env := newTestEnv(t)
		env.shop.Orders.Items = []model.Order{{
			Ref:       ref("o1"),
			Customer:  model.NamedRef{Name: "مریم"},
			Items:     []model.OrderItem{{Name: "عسل طبیعی", Quantity: 2, Price: 150000}},
			Total:     300000,
			Status:    "pending",
			CreatedAt: created,
		}}
		env.shop.Orders.StatusList = []model.OrderStatus{{Value: "pending", Label: "در انتظار"}, {Value: "shipped", Label: "ارسال شده"}}
		return env
	}

	t.Run("list", func(t *testing.T) {
		env := newEnv(t)
		w := env.do(t, request{Path: "/orders", HTMX: true})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "مریم")
		assert.Contains(t, w.Body.String(), "ارسال شده")
	})

	t.Run("detail", func(t *testing.T) {
		env := newEnv(t)
		w := env.do(t, request{Path: "/orders/o1", HTMX: true})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "عسل طبیعی")
	})

	t.Run("status update", func(t *testing.T) {
		env := newEnv(t)
		w := env.do(t, request{Method: http.MethodPost, Path: "/orders/o1/status", Form: url.Values{"status": {"shipped"}}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/orders", w.Header().Get("Location"))
		assert.Equal(t, map[string]string{"o1": "shipped"}, env.shop.Orders.StatusUpdates)
	})

	t.Run("blank status is refused", func(t *testing.T) {
		env := newEnv(t)
		w := env.do(t, request{Method: http.MethodPost, Path: "/orders/o1/status", Form: url.Values{"status": {" "}}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Empty(t, env.shop.Orders.StatusUpdates)
	})

	t.Run("rejected status change still reloads the list", func(t *testing.T) {
		env := newEnv(t)
		env.shop.Orders.UpdateStatusErr = upstreamErr("تغییر وضعیت مجاز نیست")
		w := env.do(t, request{Method: http.MethodPost, Path: "/orders/o1/status", HTMX: true, Form: url.Values{"status": {"shipped"}}})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "/orders", w.Header().Get("Hx-Redirect"))
		assert.NotNil(t, flashFrom(w))
	})

	t.Run("delete with restock", func(t *testing.T) {
		env := newEnv(t)
		w := env.do(t, request{Path: "/orders/o1/delete", HTMX: true})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="restock"`)

		w = env.do(t, request{Method: http.MethodPost, Path: "/orders/o1/delete", Form: url.Values{"restock": {"on"}}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, map[string]bool{"o1": true}, env.shop.Orders.Restocked)
	})

	t.Run("delete without restock", func(t *testing.T) {
		env := newEnv(t)
		w := env.do(t, request{Method: http.MethodPost, Path: "/orders/o1/delete", Form: url.Values{}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, map[string]bool{"o1": false}, env.shop.Orders.Restocked)
	})
}

func TestInventoryAdjust(t *testing.T) {
	ctrl := gomock.NewController(t)
	inventory := mocks.NewMockInventoryAPI(ctrl)
	env := newTestEnv(t)
	env.shop.InventoryAPI = inventory

	items := []model.InventoryItem{{Ref: ref("p1"), Name: "برنج", Stock: 10, Unit: "کیلوگرم"}}
	inventory.EXPECT().List(gomock.Any(), gomock.Any()).Return(items, nil).Times(2)
	inventory.EXPECT().
		Adjust(gomock.Any(), model.InventoryAdjustment{ProductID: "p1", Quantity: 5, Operation: model.InventoryIncrease}).
		Return(nil)

	w := env.do(t, request{Path: "/inventory", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "برنج")

	w = env.do(t, request{
		Method: http.MethodPost,
		Path:   "/inventory/adjust",
		Form:   url.Values{"productId": {"p1"}, "quantity": {"5"}, "operation": {"increase"}},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/inventory", w.Header().Get("Location"))

	// The adjustment made the cached stock stale.
	w = env.do(t, request{Path: "/inventory", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestInventoryAdjust_InvalidQuantityNeverReachesAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	inventory := mocks.NewMockInventoryAPI(ctrl)
	env := newTestEnv(t)
	env.shop.InventoryAPI = inventory

	w := env.do(t, request{
		Method: http.MethodPost,
		Path:   "/inventory/adjust",
		HTMX:   true,
		Form:   url.Values{"productId": {"p1"}, "quantity": {"چند"}, "operation": {"increase"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/inventory/adjust"`)
}

func TestContactView_MarksNewMessageRead(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Contact.Items = []model.ContactMessage{
		{Ref: ref("m1"), Name: "رضا", Subject: "ارسال سفارش", Message: "سفارش من کی می‌رسد؟", Status: model.ContactNew},
		{Ref: ref("m2"), Name: "سارا", Subject: "پیشنهاد", Status: model.ContactReplied},
	}

	w := env.do(t, request{Path: "/contact/m1", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "سفارش من کی می‌رسد؟")
	assert.Equal(t, model.ContactStatusUpdate{Status: model.ContactRead}, env.shop.Contact.Updates["m1"])

	w = env.do(t, request{Path: "/contact/m2", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, env.shop.Contact.Updates, "m2")
}

func TestContactReply(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, request{Method: http.MethodPost, Path: "/contact/m1", Form: url.Values{"status": {"replied"}}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "a reply needs a message")

	w = env.do(t, request{
		Method: http.MethodPost,
		Path:   "/contact/m1",
		Form:   url.Values{"status": {"replied"}, "replyMessage": {"فردا ارسال می‌شود"}},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, model.ContactStatusUpdate{Status: model.ContactReplied, ReplyMessage: "فردا ارسال می‌شود"}, env.shop.Contact.Updates["m1"])
}

func TestUserNotify(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Users.Items = []model.User{{Ref: ref("u1"), Name: "نگار", Email: "negar@example.com"}}

	w := env.do(t, request{Path: "/users/u1/notify", HTMX: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/users/u1/notify"`)

	w = env.do(t, request{Method: http.MethodPost, Path: "/users/u1/notify", Form: url.Values{"title": {"سلام"}}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, env.shop.Users.Sent)

	w = env.do(t, request{
		Method: http.MethodPost,
		Path:   "/users/u1/notify",
		Form:   url.Values{"title": {"سلام"}, "message": {"سفارش شما ارسال شد"}, "type": {"order"}},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/users", w.Header().Get("Location"))
	assert.Equal(t, model.Notification{Title: "سلام", Message: "سفارش شما ارسال شد", Type: model.NotificationOrder}, env.shop.Users.Sent["u1"])
}

func TestBlogEditor(t *testing.T) {
	env := newTestEnv(t)

	t.Run("apply", func(t *testing.T) {
		w := env.do(t, request{
			Method: http.MethodPost,
			Path:   "/blogs/editor",
			HTMX:   true,
			Form:   url.Values{"action": {"apply"}, "cmd": {"h2"}, "block": {"1"}, "content": {"<p>one</p><p>two</p>"}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<h2>two</h2>")
		assert.Empty(t, w.Header().Get("Hx-Trigger"))
	})

	t.Run("unknown command warns", func(t *testing.T) {
		w := env.do(t, request{
			Method: http.MethodPost,
			Path:   "/blogs/editor",
			HTMX:   true,
			Form:   url.Values{"action": {"apply"}, "cmd": {"blink"}, "content": {"<p>one</p>"}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Hx-Trigger"), "showToast")
		assert.Contains(t, w.Body.String(), "<p>one</p>")
	})

	t.Run("markdown import", func(t *testing.T) {
		w := env.do(t, request{
			Method: http.MethodPost,
			Path:   "/blogs/editor",
			HTMX:   true,
			Form:   url.Values{"action": {"markdown"}, "markdown": {"**عسل** طبیعی"}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<strong>عسل</strong>")
	})

	t.Run("unknown action", func(t *testing.T) {
		w := env.do(t, request{Method: http.MethodPost, Path: "/blogs/editor", Form: url.Values{"action": {"publish"}}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("undo and redo span requests", func(t *testing.T) {
		post := func(form url.Values) string {
			form.Set("editor", "blogs:b7")
			w := env.do(t, request{Method: http.MethodPost, Path: "/blogs/editor", HTMX: true, Form: form})
			require.Equal(t, http.StatusOK, w.Code)
			return w.Body.String()
		}

		body := post(url.Values{"action": {"apply"}, "cmd": {"h2"}, "block": {"0"}, "content": {"<p>draft</p>"}})
		require.Contains(t, body, "<h2>draft</h2>")
		assert.NotContains(t, body, `{"action": "undo"}' disabled`)
		assert.Contains(t, body, `{"action": "redo"}' disabled`)
		assert.Contains(t, body, `aria-pressed="true"`)

		body = post(url.Values{"action": {"undo"}, "block": {"0"}, "content": {"<h2>draft</h2>"}})
		assert.Contains(t, body, `<div class="preview"><p>draft</p></div>`)
		assert.NotContains(t, body, `{"action": "redo"}' disabled`)

		body = post(url.Values{"action": {"redo"}, "block": {"0"}, "content": {"<p>draft</p>"}})
		assert.Contains(t, body, "<h2>draft</h2>")
	})

	t.Run("typed text is one undo step", func(t *testing.T) {
		form := url.Values{"editor": {"blogs:b8"}, "action": {"apply"}, "cmd": {"bold"}, "block": {"0"}, "content": {"<p>first</p>"}}
		w := env.do(t, request{Method: http.MethodPost, Path: "/blogs/editor", HTMX: true, Form: form})
		require.Equal(t, http.StatusOK, w.Code)

		form = url.Values{"editor": {"blogs:b8"}, "action": {"undo"}, "content": {"<p>second</p>"}}
		w = env.do(t, request{Method: http.MethodPost, Path: "/blogs/editor", HTMX: true, Form: form})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<div class="preview"><p><strong>first</strong></p></div>`)
	})

	t.Run("opening the dialog resets history", func(t *testing.T) {
		env.shop.Blogs.Items = []model.Blog{{Ref: ref("b7"), Title: "عسل", Content: "<p>saved</p>"}}
		w := env.do(t, request{Path: "/blogs/b7/edit", HTMX: true})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="editor" value="blogs:b7"`)

		form := url.Values{"editor": {"blogs:b7"}, "action": {"undo"}, "content": {"<p>saved</p>"}}
		w = env.do(t, request{Method: http.MethodPost, Path: "/blogs/editor", HTMX: true, Form: form})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<div class="preview"><p>saved</p></div>`)
		assert.Contains(t, w.Body.String(), `{"action": "undo"}' disabled`)
	})
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Products.Items = []model.Product{{Ref: ref("p1")}, {Ref: ref("p2")}}
	env.shop.Orders.Items = []model.Order{
		{Ref: ref("o-old"), Customer: model.NamedRef{Name: "cust-oldest"}, Total: 1000, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Ref: ref("o-new"), Customer: model.NamedRef{Name: "cust-newest"}, Total: 2500, CreatedAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
	}

	w := env.do(t, request{Path: "/"})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "cust-newest"), strings.Index(body, "cust-oldest"), "newest order first")
	assert.NotContains(t, body, msgDashboardFailed)
}

func TestDashboard_PartialFailureKeepsOtherCounts(t *testing.T) {
	env := newTestEnv(t)
	env.shop.Blogs.ListErr = upstreamErr("down")
	env.shop.Orders.Items = []model.Order{{Ref: ref("o1"), Customer: model.NamedRef{Name: "مهسا"}}}

	w := env.do(t, request{Path: "/"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgDashboardFailed)
	assert.Contains(t, w.Body.String(), "مهسا")
}

func TestLoadDashboard(t *testing.T) {
	shop := newFakeShop()
	for i := range 7 {
		shop.Orders.Items = append(shop.Orders.Items, model.Order{
			Ref:       ref(fmt.Sprintf("o%d", i)),
			Total:     model.Number(100 * (i + 1)),
			CreatedAt: time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
		})
	}
	shop.Users.Items = []model.User{{Ref: ref("u1")}}
	ws := newFakeWorkspaces(shop).Get(testSID)

	dash, err := LoadDashboard(context.Background(), ws)

	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{Orders: 7, Users: 1, TotalRevenue: 2800}, dash.Stats)
	require.Len(t, dash.RecentOrders, recentOrdersLimit)
	assert.Equal(t, "o6", dash.RecentOrders[0].Key())
	assert.Equal(t, "o2", dash.RecentOrders[4].Key())
}
