package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func fieldByKey(t *testing.T, steps []Step, key string) Field {
	t.Helper()
	for _, s := range steps {
		for _, f := range s.Fields {
			if f.Key == key {
				return f
			}
		}
	}
	t.Fatalf("field %s not found", key)
	return Field{}
}

func TestRFPStepsLayout(t *testing.T) {
	steps := RFPSteps(nil)
	require.Len(t, steps, 3)
	require.Equal(t, "Basic Information", steps[0].Title)
	require.Equal(t, "Scope & Value", steps[1].Title)
	require.Equal(t, "Review & Submit", steps[2].Title)
}

func TestRFPFieldChecks(t *testing.T) {
	steps := RFPSteps(nil)

	cases := []struct {
		key   string
		value string
		ok    bool
	}{
		{KeyTitle, "", false},
		{KeyTitle, "Project Alpha", true},
		{KeyClient, "A", false},
		{KeyClient, "Innovate Corp", true},
		{KeyDueDate, "2024-08-15", true},
		{KeyDueDate, "15/08/2024", false},
		{KeyDueDate, "2024-02-30", false},
		{KeyValue, "150000", true},
		{KeyValue, "-1", false},
		{KeyPriority, "", true},
		{KeyPriority, "high", true},
		{KeyPriority, "urgent", false},
		{KeyScope, "", true},
	}
	for _, tc := range cases {
		msg := fieldByKey(t, steps, tc.key).Validate(tc.value)
		if tc.ok {
			require.Empty(t, msg, "%s=%q", tc.key, tc.value)
		} else {
			require.NotEmpty(t, msg, "%s=%q", tc.key, tc.value)
		}
	}
}

func TestRFPClientHook(t *testing.T) {
	steps := RFPSteps(func(s string) error {
		if s == "Globex" {
			return errors.New("unknown client")
		}
		return nil
	})
	f := fieldByKey(t, steps, KeyClient)
	require.Equal(t, "unknown client", f.Validate("Globex"))
	require.Empty(t, f.Validate("Innovate Corp"))
}
