package ports

// Hasher computes digests over pipeline outputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks
type Hasher interface {
	// ComputeOutputHash digests the given files, relative to root, in sorted order.
	ComputeOutputHash(root string, files []string) (string, error)
}

// OutputCleaner removes the build output directory.
type OutputCleaner interface {
	// Clean removes dir, relative to root, with all its contents.
	// A missing directory is not an error.
	Clean(root, dir string) error
}
