package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "pose only",
			opts: Options{BaseURL: "https://cdn.example/avatars/a1.glb", Pose: PoseA},
			want: "https://cdn.example/avatars/a1.glb?pose=A",
		},
		{
			name: "no options keeps bare separator",
			opts: Options{BaseURL: "https://cdn.example/avatars/a1.glb"},
			want: "https://cdn.example/avatars/a1.glb?",
		},
		{
			name: "lowercase pose is upper-cased",
			opts: Options{BaseURL: "https://x.example/m.glb", Pose: Pose("t")},
			want: "https://x.example/m.glb?pose=T",
		},
		{
			name: "single morph target",
			opts: Options{
				BaseURL:      "https://x.example/m.glb",
				MorphTargets: NewMorphTargetSet(MorphARKit),
			},
			want: "https://x.example/m.glb?morphTargets=ARKit",
		},
		{
			name: "morph targets join in checklist order",
			opts: Options{
				BaseURL: "https://x.example/m.glb",
				MorphTargets: NewMorphTargetSet(
					MorphMouthOpen, MorphARKit, MorphOculusVisemes,
				),
			},
			want: "https://x.example/m.glb?morphTargets=ARKit%2COculusVisemes%2CmouthOpen",
		},
		{
			name: "morph targets and pose",
			opts: Options{
				BaseURL:      "https://x.example/m.glb",
				Pose:         PoseT,
				MorphTargets: NewMorphTargetSet(MorphMouthSmile),
			},
			want: "https://x.example/m.glb?morphTargets=mouthSmile&pose=T",
		},
		{
			name: "surrounding whitespace trimmed",
			opts: Options{BaseURL: "  https://x.example/m.glb\t", Pose: PoseT},
			want: "https://x.example/m.glb?pose=T",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBuildEmptyURL(t *testing.T) {
	for _, base := range []string{"", "   ", "\t\n"} {
		_, err := Build(Options{BaseURL: base, Pose: PoseT})
		assert.True(t, errors.Is(err, ErrEmptyURL), "base %q", base)
	}
}

func TestMorphTargetSetDeduplicates(t *testing.T) {
	s := NewMorphTargetSet(MorphARKit, MorphARKit, MorphARKit)
	assert.Len(t, s, 1)

	u, err := Build(Options{BaseURL: "https://x.example/m.glb", MorphTargets: s})
	require.NoError(t, err)
	assert.Equal(t, "https://x.example/m.glb?morphTargets=ARKit", u.String())
}

func TestFilename(t *testing.T) {
	tests := []struct {
		url  RequestURL
		want string
	}{
		{"https://x.example/path/model.glb?pose=T", "model.glb"},
		{"https://x.example/path/model.glb?", "model.glb"},
		{"https://cdn.example/avatars/a1.glb?pose=A", "a1.glb"},
		{"model.glb", "model.glb"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.url.Filename(), "url %q", tt.url)
	}
}
