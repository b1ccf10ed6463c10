package seed

import (
	"context"
	"fmt"

	"bloodnet/internal/bloodapi"
	"bloodnet/pkg/types"

	"github.com/sirupsen/logrus"
)

var sampleRequests = []*types.BloodRequest{
	{PatientName: "Maria Lopez", BloodGroup: "O+", Hospital: "Northwestern Memorial", City: "Chicago", ContactPhone: "5550200001", ContactEmail: "maria.lopez+seed@example.com", Urgent: true},
	{PatientName: "James Carter", BloodGroup: "A-", Hospital: "Denver Health", City: "Denver", ContactPhone: "5550200002", ContactEmail: "james.carter+seed@example.com", NeededBy: "2026-10-01"},
	{PatientName: "Sarah Kim", BloodGroup: "AB-", Hospital: "Dell Seton", City: "Austin", ContactPhone: "5550200003", ContactEmail: "sarah.kim+seed@example.com", Urgent: true},
}

func Requests(ctx context.Context, api *bloodapi.Client) error {
	for _, request := range sampleRequests {
		result, err := api.CreateRequest(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to seed request for %s: %w", request.PatientName, err)
		}

		logrus.WithFields(logrus.Fields{
			"id":          result.Request.ID,
			"patient":     result.Request.PatientName,
			"donor_count": result.DonorCount,
		}).Info("seeded request")
	}

	return nil
}
