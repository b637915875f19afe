package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateIssueRequestValidateOrder(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateIssueRequest
		wantErr string
	}{
		{
			name:    "empty title wins over everything else",
			req:     CreateIssueRequest{Title: "", Description: "", Priority: "Nope"},
			wantErr: "Title required",
		},
		{
			name:    "whitespace-only title is required, not leading-whitespace",
			req:     CreateIssueRequest{Title: " \t ", Description: "d", Priority: PriorityLow},
			wantErr: "Title required",
		},
		{
			name:    "leading whitespace checked before description",
			req:     CreateIssueRequest{Title: " x", Description: "", Priority: "Nope"},
			wantErr: "Title must not start with whitespace",
		},
		{
			name:    "leading vertical tab",
			req:     CreateIssueRequest{Title: "\vx", Description: "d", Priority: PriorityLow},
			wantErr: "Title must not start with whitespace",
		},
		{
			name:    "leading non-breaking space",
			req:     CreateIssueRequest{Title: " x", Description: "d", Priority: PriorityLow},
			wantErr: "Title must not start with whitespace",
		},
		{
			name:    "description checked before priority",
			req:     CreateIssueRequest{Title: "x", Description: " ", Priority: "Nope"},
			wantErr: "Description required",
		},
		{
			name:    "priority checked before status",
			req:     CreateIssueRequest{Title: "x", Description: "d", Priority: "Nope", Status: "Nope"},
			wantErr: "Priority must be one of: Low, Medium, High",
		},
		{
			name:    "invalid status is last",
			req:     CreateIssueRequest{Title: "x", Description: "d", Priority: PriorityHigh, Status: "Closed"},
			wantErr: "Status must be one of: Open, In Progress, Resolved",
		},
		{
			name: "trailing whitespace title is fine",
			req:  CreateIssueRequest{Title: "x ", Description: "d", Priority: PriorityLow},
		},
		{
			name: "absent status defaults to Open and passes",
			req:  CreateIssueRequest{Title: "x", Description: "d", Priority: PriorityLow},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestResolvedStatus(t *testing.T) {
	assert.Equal(t, StatusOpen, CreateIssueRequest{}.ResolvedStatus())
	assert.Equal(t, StatusResolved, CreateIssueRequest{Status: StatusResolved}.ResolvedStatus())
}

func TestEnumValidity(t *testing.T) {
	for _, s := range []Status{StatusOpen, StatusInProgress, StatusResolved} {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, Status("Closed").Valid())
	assert.False(t, Status("").Valid())

	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, p.Valid(), "priority %q", p)
	}
	assert.False(t, Priority("Urgent").Valid())
	assert.False(t, Priority("").Valid())
}
