package pricing

import (
	"math"

	"cloudguide/core/types"
	"cloudguide/internal/errors"
)

// ValidateSpec rejects specifications the formula cannot price.
// vcpu must be at least one because the RAM ratio divides by it.
func ValidateSpec(spec types.InfrastructureSpec) error {
	if spec.VCPU < 1 {
		return errors.Inputf("vcpu must be at least 1, got %d", spec.VCPU).
			WithContext("field", "vcpu")
	}
	if !positive(spec.RAM) {
		return errors.Inputf("ram must be a positive number of GB, got %v", spec.RAM).
			WithContext("field", "ram")
	}
	if !positive(spec.Storage) {
		return errors.Inputf("storage must be a positive number of GB, got %v", spec.Storage).
			WithContext("field", "storage")
	}
	if !spec.OS.IsValid() {
		return errors.Inputf("unsupported operating system %q", spec.OS).WithContext("field", "os")
	}
	if !spec.DiskType.IsValid() {
		return errors.Inputf("unsupported disk type %q", spec.DiskType).WithContext("field", "diskType")
	}
	if !spec.UseCase.IsValid() {
		return errors.Inputf("unsupported use case %q", spec.UseCase).WithContext("field", "useCase")
	}
	if !spec.Region.IsValid() {
		return errors.Inputf("unsupported region %q", spec.Region).WithContext("field", "region")
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1) && !math.IsNaN(f)
}
