package manifest

import _ "embed"

// defaultManifest is the built-in provisioning plan. It reproduces the
// original setup script for the TPU video workload literally, including its
// quirks: the uninstall step tolerates absent packages, the torch pin is
// force-reinstalled after the batch install, and the clone step fails if the
// checkout directory already exists.
//
//go:embed default.yaml
var defaultManifest string
