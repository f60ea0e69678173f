package placement

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

//go:generate mockgen -destination "mock_placement_test.go" -package $GOPACKAGE -write_package_comment=false github.com/hoangt/cerebrum-design-tool-sub004/pkg/placement Recorder

func TestPlacement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Placement Suite")
}
