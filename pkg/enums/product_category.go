package enums

// ProductCategory groups catalog products for filtering. The set is owned by
// the backend; the client treats it as an open string and only normalizes
// the handful it renders specially.
type ProductCategory string

const (
	ProductCategoryFabric      ProductCategory = "Fabric"
	ProductCategoryReadymade   ProductCategory = "Readymade"
	ProductCategoryAccessories ProductCategory = "Accessories"
	ProductCategoryOther       ProductCategory = "Other"
)

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}
