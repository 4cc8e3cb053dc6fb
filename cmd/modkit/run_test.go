// SPDX-License-Identifier: MPL-2.0

package cmd

import "testing"

func TestSplitRunIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		dashAt      int
		args        []string
		wantOwner   string
		wantName    string
		wantVersion string
		wantModule  []string
		wantErr     bool
	}{
		{
			name:   "no arguments",
			dashAt: -1,
		},
		{
			name:        "explicit triple",
			dashAt:      -1,
			args:        []string{"acme", "worker", "1.0.0"},
			wantOwner:   "acme",
			wantName:    "worker",
			wantVersion: "1.0.0",
		},
		{
			name:        "explicit triple with trailing args",
			dashAt:      -1,
			args:        []string{"acme", "worker", "1.0.0", "extra"},
			wantOwner:   "acme",
			wantName:    "worker",
			wantVersion: "1.0.0",
			wantModule:  []string{"extra"},
		},
		{
			name:       "default identity with one module arg after dash",
			dashAt:     0,
			args:       []string{"-cluster"},
			wantModule: []string{"-cluster"},
		},
		{
			name:       "default identity with two module args after dash",
			dashAt:     0,
			args:       []string{"-conf", "conf.json"},
			wantModule: []string{"-conf", "conf.json"},
		},
		{
			// Three or more tokens after the separator must never be
			// mistaken for an explicit identity triple.
			name:       "default identity with three module args after dash",
			dashAt:     0,
			args:       []string{"-conf", "conf.json", "extra"},
			wantModule: []string{"-conf", "conf.json", "extra"},
		},
		{
			name:        "explicit triple with args after dash",
			dashAt:      3,
			args:        []string{"acme", "worker", "1.0.0", "--port", "8080"},
			wantOwner:   "acme",
			wantName:    "worker",
			wantVersion: "1.0.0",
			wantModule:  []string{"--port", "8080"},
		},
		{
			name:    "partial identity",
			dashAt:  -1,
			args:    []string{"acme", "worker"},
			wantErr: true,
		},
		{
			name:    "partial identity before dash",
			dashAt:  2,
			args:    []string{"acme", "worker", "-conf", "conf.json"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			owner, name, version, moduleArgs, err := splitRunIdentity(tt.dashAt, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("splitRunIdentity() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("splitRunIdentity() error = %v", err)
			}

			if owner != tt.wantOwner || name != tt.wantName || version != tt.wantVersion {
				t.Errorf("identity = %q/%q/%q, want %q/%q/%q",
					owner, name, version, tt.wantOwner, tt.wantName, tt.wantVersion)
			}
			if len(moduleArgs) != len(tt.wantModule) {
				t.Fatalf("moduleArgs = %v, want %v", moduleArgs, tt.wantModule)
			}
			for i := range tt.wantModule {
				if moduleArgs[i] != tt.wantModule[i] {
					t.Errorf("moduleArgs[%d] = %q, want %q", i, moduleArgs[i], tt.wantModule[i])
				}
			}
		})
	}
}
