package validation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/courierdesk/internal/server/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func floatPtr(v float64) *float64 {
	return &v
}

func validRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		FirstName:       "Ivan",
		LastName:        "Petrov",
		PhoneNumber:     "+79000000000",
		PackageName:     "Documents",
		PickupAddress:   "Lenina 1",
		DeliveryAddress: "Mira 10",
		Distance:        floatPtr(0),
	}
}

func TestCreateOrderRequestValidation(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		mutate func(*dto.CreateOrderRequest)
		field  string
		rule   string
	}{
		{"valid zero distance", func(*dto.CreateOrderRequest) {}, "", ""},
		{"missing distance", func(r *dto.CreateOrderRequest) { r.Distance = nil }, "distance", "required"},
		{"negative distance", func(r *dto.CreateOrderRequest) { r.Distance = floatPtr(-1) }, "distance", "gte=0"},
		{"blank first name", func(r *dto.CreateOrderRequest) { r.FirstName = "   " }, "firstName", "notblank"},
		{"missing delivery address", func(r *dto.CreateOrderRequest) { r.DeliveryAddress = "" }, "deliveryAddress", "notblank"},
		{"whitespace package name", func(r *dto.CreateOrderRequest) { r.PackageName = "\t\n " }, "packageName", "notblank"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := v.Struct(req)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected validation error for %s", tc.field)
			}
			fields := FieldErrors(err)
			if fields[tc.field] != tc.rule {
				t.Fatalf("expected %s=%s, got %v", tc.field, tc.rule, fields)
			}
		})
	}
}

func TestBindAndValidate(t *testing.T) {
	v := New()

	run := func(body []byte) (*httptest.ResponseRecorder, error) {
		resp := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(resp)
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var req dto.CreateOrderRequest
		return resp, BindAndValidate(c, &req, v)
	}

	resp, err := run([]byte("{"))
	if err == nil || resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d (%v)", resp.Code, err)
	}

	resp, err = run([]byte(`{"firstName":"Ivan"}`))
	if err == nil || resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid body, got %d (%v)", resp.Code, err)
	}
	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error != "validation failed" || payload.Fields["distance"] != "required" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	body, _ := json.Marshal(validRequest())
	resp, err = run(body)
	if err != nil {
		t.Fatalf("unexpected error: %v (%s)", err, resp.Body.String())
	}
}

func TestBindQueryAndValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		query   string
		wantErr bool
		urgent  bool
	}{
		{"valid", "?distance=3.5&urgent=true", false, true},
		{"missing distance", "?urgent=true", true, false},
		{"not a number", "?distance=far", true, false},
		{"negative", "?distance=-2", true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(resp)
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
			var q dto.QuoteQuery
			err := BindQueryAndValidate(c, &q, v)
			if tc.wantErr {
				if err == nil || resp.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d (%v)", resp.Code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Distance == nil || *q.Distance != 3.5 || q.Urgent != tc.urgent {
				t.Fatalf("unexpected query binding %+v", q)
			}
		})
	}
}

func TestUpdateStatusRequestNotBlank(t *testing.T) {
	v := New()
	if err := v.Struct(dto.UpdateStatusRequest{Status: "accepted"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := v.Struct(dto.UpdateStatusRequest{Status: "  "})
	if err == nil {
		t.Fatal("expected validation error for blank status")
	}
	if got := FieldErrors(err)["status"]; got != "notblank" {
		t.Fatalf("expected status=notblank, got %v", FieldErrors(err))
	}
}
