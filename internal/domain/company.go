package domain

// Company is a customer organisation. Companies are never deleted.
type Company struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CompanyInput is the body of a create or rename request.
type CompanyInput struct {
	Name string `json:"name"`
}

// Normalize trims the name and checks it is present.
func (in *CompanyInput) Normalize() error {
	name, err := RequireText("name", in.Name)
	if err != nil {
		return err
	}
	in.Name = name
	return nil
}
