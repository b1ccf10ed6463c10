package seed

import (
	"context"
	"fmt"

	"bloodnet/internal/bloodapi"
	"bloodnet/internal/utils"
	"bloodnet/pkg/types"

	"github.com/sirupsen/logrus"
)

var sampleDonors = []*types.Donor{
	{Name: "Ava Williams", Email: "ava.williams+seed@example.com", ContactNumber: "5550100001", BloodGroup: "O+", City: "Chicago", Age: utils.IntPtr(29)},
	{Name: "Liam Johnson", Email: "liam.johnson+seed@example.com", ContactNumber: "5550100002", BloodGroup: "A-", City: "Chicago", Age: utils.IntPtr(41)},
	{Name: "Noah Brown", Email: "noah.brown+seed@example.com", ContactNumber: "5550100003", BloodGroup: "B+", City: "Denver", Age: utils.IntPtr(35)},
	{Name: "Mia Davis", Email: "mia.davis+seed@example.com", ContactNumber: "5550100004", BloodGroup: "AB-", City: "Austin"},
	{Name: "Elijah Garcia", Email: "elijah.garcia+seed@example.com", ContactNumber: "5550100005", BloodGroup: "O-", City: "Austin", Age: utils.IntPtr(52)},
	{Name: "Olivia Miller", Email: "olivia.miller+seed@example.com", ContactNumber: "5550100006", BloodGroup: "A+", City: "Seattle", Age: utils.IntPtr(23)},
}

// Donors submits the sample donors through the backing service. Donors whose
// email already exists are skipped so the command can be re-run.
func Donors(ctx context.Context, api *bloodapi.Client) error {
	for _, donor := range sampleDonors {
		created, err := api.CreateDonor(ctx, donor)
		if err != nil {
			if bloodapi.IsConflict(err) {
				logrus.WithField("email", donor.Email).Info("donor already exists, skipping")
				continue
			}
			return fmt.Errorf("failed to seed donor %s: %w", donor.Email, err)
		}

		logrus.WithFields(logrus.Fields{"id": created.ID, "email": created.Email}).Info("seeded donor")
	}

	return nil
}
