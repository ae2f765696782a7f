package runtime

import (
	"testing"

	dockercontainer "github.com/docker/docker/api/types/container"
	dockerunits "github.com/docker/go-units"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
)

func TestBuildHostConfig(t *testing.T) {
	hc := buildHostConfig(CreateOptions{
		Name:     "chunkhost-u-abcd1234",
		Image:    "test-image",
		Spec:     models.ResourceSpec{RAMGB: 8, CPU: 2, DiskGB: 20},
		HostPort: 3456,
	})

	// systemd needs privileged mode and the host cgroup namespace. The
	// mode is built from its string form, which every SDK version accepts.
	if !hc.Privileged {
		t.Error("Privileged = false, want true")
	}
	if hc.CgroupnsMode != dockercontainer.CgroupnsMode("host") {
		t.Errorf("CgroupnsMode = %q, want host", hc.CgroupnsMode)
	}
	for _, path := range []string{"/run", "/run/lock"} {
		if _, ok := hc.Tmpfs[path]; !ok {
			t.Errorf("tmpfs mount %s missing", path)
		}
	}

	if hc.Resources.Memory != 8*dockerunits.GiB {
		t.Errorf("Memory = %d, want %d", hc.Resources.Memory, 8*dockerunits.GiB)
	}
	if hc.Resources.NanoCPUs != 2e9 {
		t.Errorf("NanoCPUs = %d, want 2e9", hc.Resources.NanoCPUs)
	}

	bindings, ok := hc.PortBindings[sshPort]
	if !ok || len(bindings) != 1 {
		t.Fatalf("no binding published for %s", sshPort)
	}
	if bindings[0].HostPort != "3456" {
		t.Errorf("HostPort = %q, want 3456", bindings[0].HostPort)
	}
}
