package output

import (
	"fmt"
	"os"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/config"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/sysfile"
)

// WriteFinalOutputs writes the address map, the routing file and the
// finalized post-mapping section into the locations named by paths. The
// output directory is created when missing.
func WriteFinalOutputs(m *model.Model, paths *config.Paths, cfg *config.Config) error {
	if err := requireComplete("WriteFinalOutputs", m); err != nil {
		return err
	}
	if err := os.MkdirAll(paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := WriteComponentAddressMap(paths.AddressMapPath(), m, cfg); err != nil {
		return err
	}
	if err := GenerateRouting(paths.RoutingPath(), m, cfg); err != nil {
		return err
	}
	return sysfile.WriteMappingFile(paths.MappingPath(), m, false, true)
}
