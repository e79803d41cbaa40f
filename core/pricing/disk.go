package pricing

import "cloudguide/core/types"

// RecommendedDiskType returns the storage tier callers should pre-fill for a workload.
// Unknown workloads get DefaultDiskType.
func RecommendedDiskType(u types.UseCase) types.DiskType {
	if d, ok := recommendedDisks[u]; ok {
		return d
	}
	return DefaultDiskType
}
