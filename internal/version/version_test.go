// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{}, "dev"},
		{Info{Version: "v1.0.0"}, "v1.0.0"},
		{Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2026-01-30T12:00:00Z"}, "v1.0.0 (abc1234)"},
	}

	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
