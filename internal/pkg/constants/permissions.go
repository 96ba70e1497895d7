package constants

// Permissions gated per role. Buyer-and-seller actions (favorites,
// notifications, profile) only need authentication, not a permission.
const (
	CreateProduct = "create_product"
	EditProduct   = "edit_product"
	RemoveProduct = "remove_product"
	UploadImage   = "upload_image"
	ViewDashboard = "view_dashboard"
)

// PermissionRoles maps each permission to roles allowed to perform it.
var PermissionRoles = map[string][]string{
	CreateProduct: {Seller},
	EditProduct:   {Seller},
	RemoveProduct: {Seller},
	UploadImage:   {Seller},
	ViewDashboard: {Seller},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
