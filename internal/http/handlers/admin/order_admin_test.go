package admin

import (
	"errors"
	"testing"

	"github.com/dujiao-next/cardshop-admin/internal/http/response"
	"github.com/dujiao-next/cardshop-admin/internal/service"
)

func TestBatchDeleteOrdersCode(t *testing.T) {
	cases := []struct {
		name    string
		outcome service.OrderDeleteOutcome
		want    int
	}{
		{name: "deleted", outcome: service.OrdersDeleted{Count: 1}, want: response.CodeOK},
		{name: "all not found", outcome: service.OrdersDeleted{NotFound: []string{"x"}}, want: response.CodeOK},
		{name: "rejected", outcome: service.OrdersRejected{Skipped: []string{"a"}}, want: response.CodeBadRequest},
		{name: "validation", outcome: service.DeleteValidationFailed{Reason: service.ReasonNothingSelected}, want: response.CodeBadRequest},
		{name: "unauthorized", outcome: service.DeleteUnauthorized{}, want: response.CodeUnauthorized},
		{name: "infra", outcome: service.DeleteInfraFailed{Err: errors.New("db down")}, want: response.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := batchDeleteOrdersCode(tc.outcome); got != tc.want {
				t.Fatalf("code want %d got %d", tc.want, got)
			}
		})
	}
}

func TestBuildBatchDeleteOrdersResponse(t *testing.T) {
	body := buildBatchDeleteOrdersResponse(service.OrdersDeleted{
		Count:         2,
		Skipped:       []string{"paid-1"},
		ReleasedCards: 3,
	})
	if !body.Success || body.DeletedCount != 2 || body.ReleasedCards != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.SkippedCount != 1 || body.SkippedIDs[0] != "paid-1" {
		t.Fatalf("skipped ids not carried: %+v", body)
	}
	if body.NotFoundIDs == nil || len(body.NotFoundIDs) != 0 {
		t.Fatalf("not found ids should be an empty slice, got %#v", body.NotFoundIDs)
	}

	rejected := buildBatchDeleteOrdersResponse(service.OrdersRejected{Skipped: []string{"a", "b"}})
	if rejected.Success || rejected.SkippedCount != 2 || rejected.DeletedCount != 0 {
		t.Fatalf("unexpected rejected body: %+v", rejected)
	}
	if rejected.Message == "" {
		t.Fatalf("rejected body should carry a message")
	}

	unauthorized := buildBatchDeleteOrdersResponse(service.DeleteUnauthorized{})
	if unauthorized.Success || unauthorized.SkippedIDs == nil {
		t.Fatalf("unexpected unauthorized body: %+v", unauthorized)
	}
}

func TestBulkFailureCode(t *testing.T) {
	cases := map[service.BulkFailureReason]int{
		service.BulkFailureUnauthorized: response.CodeUnauthorized,
		service.BulkFailureInvalidInput: response.CodeBadRequest,
		service.BulkFailureAllLocked:    response.CodeBadRequest,
		service.BulkFailureInternal:     response.CodeInternal,
	}
	for reason, want := range cases {
		if got := bulkFailureCode(reason); got != want {
			t.Fatalf("reason %s want %d got %d", reason, want, got)
		}
	}
}
