package bloodapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"bloodnet/pkg/types"
)

// DonorFilter narrows the donor listing. Empty fields are omitted from the
// query string so the service returns the unfiltered list.
type DonorFilter struct {
	City       string
	BloodGroup string
}

func (c *Client) Donors(ctx context.Context, filter DonorFilter) ([]*types.Donor, error) {
	query := url.Values{}
	if filter.City != "" {
		query.Set("city", filter.City)
	}
	if filter.BloodGroup != "" {
		query.Set("bloodGroup", filter.BloodGroup)
	}

	var donors []*types.Donor
	if err := c.do(ctx, http.MethodGet, "/donors", query, nil, &donors); err != nil {
		return nil, err
	}

	return donors, nil
}

func (c *Client) CreateDonor(ctx context.Context, donor *types.Donor) (*types.Donor, error) {
	created := new(types.Donor)
	if err := c.do(ctx, http.MethodPost, "/donors", nil, donor, created); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateDonor replaces the donor record. The service expects the acting
// admin's email as a query parameter.
func (c *Client) UpdateDonor(ctx context.Context, id int64, adminEmail string, donor *types.Donor) (*types.Donor, error) {
	query := url.Values{}
	query.Set("email", adminEmail)

	updated := new(types.Donor)
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/donors/%d", id), query, donor, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (c *Client) DeleteDonor(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/donors/%d", id), nil, nil, nil)
}

// NotifyDonor sends an ad hoc email through the service and returns its
// confirmation text.
func (c *Client) NotifyDonor(ctx context.Context, id int64, subject, message string) (string, error) {
	query := url.Values{}
	query.Set("subject", subject)
	query.Set("message", message)

	return c.doText(ctx, http.MethodPost, fmt.Sprintf("/donors/%d/notify", id), query, nil)
}
