package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/openapi"
)

const ticketDocument = `
openapi: 3.0.3
info:
  title: Support API
  version: "1.0"
paths:
  /tickets:
    post:
      operationId: createTicket
      summary: Open a ticket
      description: File a new support ticket.
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [subject, priority]
              properties:
                subject:
                  type: string
                  title: Subject
                  minLength: 2
                  maxLength: 120
                priority:
                  type: string
                  enum: [low, normal, high]
                  default: normal
                copies:
                  type: integer
                  minimum: 1
                  maximum: 10
                urgent:
                  type: boolean
  /tickets/{id}/attachment:
    post:
      operationId: attachFile
      requestBody:
        content:
          multipart/form-data:
            schema:
              type: object
              properties:
                upload:
                  type: string
                  format: binary
  /health:
    get:
      operationId: health
      responses:
        "200":
          description: OK
`

func TestStepFromOperation(t *testing.T) {
	step, err := openapi.StepFromOperation(context.Background(), []byte(ticketDocument), "createTicket")
	if err != nil {
		t.Fatalf("StepFromOperation() error = %v", err)
	}

	if step.Name != "createTicket" {
		t.Errorf("Name = %q, want %q", step.Name, "createTicket")
	}
	if step.Title != "Open a ticket" {
		t.Errorf("Title = %q, want %q", step.Title, "Open a ticket")
	}
	if step.Description != "File a new support ticket." {
		t.Errorf("Description = %q", step.Description)
	}

	want := []form.Field{
		{
			Name:     "priority",
			Type:     form.FieldTypeString,
			Required: true,
			Default:  "normal",
			Enum:     []string{"low", "normal", "high"},
		},
		{
			Name:     "subject",
			Type:     form.FieldTypeString,
			Required: true,
			Label:    "Subject",
			Validations: []form.ValidationRule{
				{Kind: form.ValidationRuleMinLength, Params: map[string]string{"value": "2"}},
				{Kind: form.ValidationRuleMaxLength, Params: map[string]string{"value": "120"}},
			},
		},
		{
			Name: "copies",
			Type: form.FieldTypeInteger,
			Validations: []form.ValidationRule{
				{Kind: form.ValidationRuleMin, Params: map[string]string{"value": "1"}},
				{Kind: form.ValidationRuleMax, Params: map[string]string{"value": "10"}},
			},
		},
		{
			Name: "urgent",
			Type: form.FieldTypeBoolean,
		},
	}
	if diff := cmp.Diff(want, step.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestStepFromOperationBinaryBecomesFileField(t *testing.T) {
	step, err := openapi.StepFromOperation(context.Background(), []byte(ticketDocument), "attachFile")
	if err != nil {
		t.Fatalf("StepFromOperation() error = %v", err)
	}
	if len(step.Fields) != 1 || step.Fields[0].Type != form.FieldTypeFile {
		t.Errorf("fields = %+v, want a single file field", step.Fields)
	}
}

func TestStepFromOperationErrors(t *testing.T) {
	tests := []struct {
		name        string
		document    string
		operationID string
		wantErr     string
	}{
		{
			name:        "empty document",
			document:    "",
			operationID: "createTicket",
			wantErr:     "payload is empty",
		},
		{
			name:        "blank operation id",
			document:    ticketDocument,
			operationID: "  ",
			wantErr:     "operation id is required",
		},
		{
			name:        "unknown operation",
			document:    ticketDocument,
			operationID: "deleteTicket",
			wantErr:     `operation "deleteTicket" not found`,
		},
		{
			name:        "operation without a body",
			document:    ticketDocument,
			operationID: "health",
			wantErr:     "no usable request body schema",
		},
		{
			name:        "unparsable document",
			document:    "{not yaml",
			operationID: "createTicket",
			wantErr:     "load document",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := openapi.StepFromOperation(context.Background(), []byte(tc.document), tc.operationID)
			if err == nil {
				t.Fatalf("StepFromOperation() expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("StepFromOperation() error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}
