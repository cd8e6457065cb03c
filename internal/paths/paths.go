// Package paths names instance and solution files.
//
// Inputs:  <instances-root>/<family>-thop/<family>_<ii>_<type>_<ss>_<tt>.thop
// Outputs: <solutions-root>/<variant-dir>/<family>-thop/<family>_<ii>_<type>_<ss>_<tt>_<rr>.thop.sol
package paths

import (
	"fmt"
	"path/filepath"

	"thop-experiments/internal/domain"
)

type Resolver struct {
	InstancesRoot string
	SolutionsRoot string
	TunedDir      string
	PlainDir      string
}

// NewResolver returns a resolver; TunedDir and PlainDir must differ so the
// two variants never write to the same file.
func NewResolver(instancesRoot, solutionsRoot, tunedDir, plainDir string) (*Resolver, error) {
	if tunedDir == "" || plainDir == "" || filepath.Clean(tunedDir) == filepath.Clean(plainDir) {
		return nil, fmt.Errorf("%w: tuned_dir %q and plain_dir %q must be distinct and non-empty", domain.ErrInvalidConfig, tunedDir, plainDir)
	}
	return &Resolver{
		InstancesRoot: instancesRoot,
		SolutionsRoot: solutionsRoot,
		TunedDir:      tunedDir,
		PlainDir:      plainDir,
	}, nil
}

func (r *Resolver) InputPath(c domain.GridCoordinate) string {
	return filepath.Join(r.InstancesRoot, familyDir(c.Family), stem(c)+".thop")
}

func (r *Resolver) OutputPath(c domain.GridCoordinate, repetition int, v domain.Variant) string {
	name := fmt.Sprintf("%s_%02d.thop.sol", stem(c), repetition)
	return filepath.Join(r.OutputDir(c.Family, v), name)
}

// OutputDir is the directory holding every solution of a family for a variant.
func (r *Resolver) OutputDir(family string, v domain.Variant) string {
	return filepath.Join(r.SolutionsRoot, r.variantDir(v), familyDir(family))
}

func (r *Resolver) variantDir(v domain.Variant) string {
	if v.Tuned() {
		return r.TunedDir
	}
	return r.PlainDir
}

func familyDir(family string) string {
	return family + "-thop"
}

func stem(c domain.GridCoordinate) string {
	return fmt.Sprintf("%s_%02d_%s_%02d_%02d", c.Family, c.ItemsPerCity, c.KnapsackType, c.KnapsackSize, c.MaxTravelTime)
}
