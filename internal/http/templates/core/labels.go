package core

import (
	"html/template"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/richtext"
)

var (
	reviewStatusLabels = map[model.ReviewStatus]string{
		model.ReviewPending:  "در انتظار بررسی",
		model.ReviewApproved: "تایید شده",
		model.ReviewRejected: "رد شده",
	}
	contactStatusLabels = map[model.ContactStatus]string{
		model.ContactNew:      "جدید",
		model.ContactRead:     "خوانده شده",
		model.ContactReplied:  "پاسخ داده شده",
		model.ContactArchived: "بایگانی",
	}
	adPlacementLabels = map[model.AdPlacement]string{
		model.AdPlacementHero:     "بنر صفحه اصلی",
		model.AdPlacementCarousel: "اسلایدر تبلیغات",
		model.AdPlacementSidebar:  "ستون کناری",
		model.AdPlacementFooter:   "فوتر سایت",
	}
	bannerPlacementLabels = map[model.BannerPlacement]string{
		model.BannerPlacementHero:  "اسلایدر اصلی",
		model.BannerPlacementPromo: "بنر تبلیغاتی",
		model.BannerPlacementGrid:  "شبکه بنرها",
		model.BannerPlacementMini:  "بنر کوچک",
	}
	roleLabels = map[string]string{
		model.UserRoleCustomer: "مشتری",
		model.UserRoleEditor:   "ویرایشگر",
		model.UserRoleAdmin:    "مدیر",
	}
	notificationTypeLabels = map[model.NotificationType]string{
		model.NotificationCustom: "پیام سفارشی",
		model.NotificationOrder:  "سفارش",
		model.NotificationPromo:  "پیشنهاد ویژه",
		model.NotificationSystem: "سیستمی",
	}
	inventoryOpLabels = map[model.InventoryOperation]string{
		model.InventorySet:      "تنظیم مقدار",
		model.InventoryIncrease: "افزایش",
		model.InventoryDecrease: "کاهش",
	}
	commandLabels = map[richtext.Command]string{
		richtext.Bold:        "پررنگ",
		richtext.Italic:      "کج",
		richtext.Underline:   "زیرخط",
		richtext.Strike:      "خط‌خورده",
		richtext.Heading2:    "تیتر ۲",
		richtext.Heading3:    "تیتر ۳",
		richtext.BulletList:  "فهرست",
		richtext.OrderedList: "فهرست شماره‌دار",
		richtext.Blockquote:  "نقل قول",
	}
	statusClasses = map[string]string{
		string(model.ReviewPending):   "badge-warning",
		string(model.ReviewApproved):  "badge-success",
		string(model.ReviewRejected):  "badge-danger",
		string(model.ContactNew):      "badge-info",
		string(model.ContactRead):     "badge-secondary",
		string(model.ContactReplied):  "badge-success",
		string(model.ContactArchived): "badge-light",
	}
)

func lookup[K ~string](m map[K]string, k K) string {
	if v, ok := m[k]; ok {
		return v
	}
	return string(k)
}

func labelFuncs() template.FuncMap {
	return template.FuncMap{
		"reviewStatusLabel":     func(s model.ReviewStatus) string { return lookup(reviewStatusLabels, s) },
		"contactStatusLabel":    func(s model.ContactStatus) string { return lookup(contactStatusLabels, s) },
		"adPlacementLabel":      func(p model.AdPlacement) string { return lookup(adPlacementLabels, p) },
		"bannerPlacementLabel":  func(p model.BannerPlacement) string { return lookup(bannerPlacementLabels, p) },
		"roleLabel":             func(r string) string { return lookup(roleLabels, r) },
		"notificationTypeLabel": func(t model.NotificationType) string { return lookup(notificationTypeLabels, t) },
		"inventoryOpLabel":      func(op model.InventoryOperation) string { return lookup(inventoryOpLabels, op) },
		"commandLabel":          func(c richtext.Command) string { return lookup(commandLabels, c) },
		"statusClass": func(s any) string {
			var key string
			switch v := s.(type) {
			case string:
				key = v
			case model.ReviewStatus:
				key = string(v)
			case model.ContactStatus:
				key = string(v)
			}
			if c, ok := statusClasses[key]; ok {
				return c
			}
			return "badge-light"
		},
		"reviewStatuses":    func() []model.ReviewStatus { return model.ReviewStatuses },
		"contactStatuses":   func() []model.ContactStatus { return model.ContactStatuses },
		"adPlacements":      func() []model.AdPlacement { return model.AdPlacements },
		"bannerPlacements":  func() []model.BannerPlacement { return model.BannerPlacements },
		"userRoles":         func() []string { return model.UserRoles },
		"notificationTypes": func() []model.NotificationType { return model.NotificationTypes },
		"inventoryOps":      func() []model.InventoryOperation { return model.InventoryOperations },
	}
}
