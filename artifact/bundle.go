// Package artifact 负责 Scoring Artifact Bundle 的加载与一致性校验。
// Bundle 由离线训练管线产出，包含分类器、列变换、特征选择器和特征清单四个工件；
// 任一缺失或相互不一致都是致命配置错误，进程不得带着不完整的工件进入推理。
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/nutrisolve/mealrec/core"
	"github.com/nutrisolve/mealrec/feature"
	"github.com/nutrisolve/mealrec/model"
)

// Bundle 内的标准文件名（与离线管线的写出约定一致）。
const (
	FileClassifier = "rf_model.json"
	FileTransform  = "preprocessor.json"
	FileSelector   = "feature_selector.json"
	FileManifest   = "feature_names.json"
)

// Bundle 是加载完成、校验一致的打分工件集。进程内只读共享。
type Bundle struct {
	Manifest   *feature.Manifest
	Transform  *feature.ColumnTransform
	Selector   *feature.KBestSelector
	Classifier model.Classifier
}

// Load 从目录并发加载四个工件并校验一致性。
// 任一文件缺失返回 MISSING_ARTIFACT（指明缺失文件名），调用方应以非零退出。
func Load(ctx context.Context, dir string) (*Bundle, error) {
	var b Bundle

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		b.Manifest, err = feature.LoadManifest(filepath.Join(dir, FileManifest))
		return wrapMissing(err, FileManifest)
	})
	eg.Go(func() (err error) {
		b.Transform, err = feature.LoadTransform(filepath.Join(dir, FileTransform))
		return wrapMissing(err, FileTransform)
	})
	eg.Go(func() (err error) {
		b.Selector, err = feature.LoadSelector(filepath.Join(dir, FileSelector))
		return wrapMissing(err, FileSelector)
	})
	eg.Go(func() (err error) {
		b.Classifier, err = model.LoadClassifier(filepath.Join(dir, FileClassifier))
		return wrapMissing(err, FileClassifier)
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate 校验四个工件的形状/列序一致性。不一致是致命配置错误。
func (b *Bundle) Validate() error {
	want := b.Manifest.TransformedFeatures
	got := b.Transform.OutputNames()
	if len(got) != len(want) {
		return shapeErr(fmt.Sprintf("transform produces %d columns, manifest declares %d",
			len(got), len(want)))
	}
	for i := range got {
		if got[i] != want[i] {
			return shapeErr(fmt.Sprintf("transform column %d is %q, manifest declares %q",
				i, got[i], want[i]))
		}
	}

	if b.Selector.InputDim != len(want) {
		return shapeErr(fmt.Sprintf("selector expects %d columns, transform produces %d",
			b.Selector.InputDim, len(want)))
	}
	if k := b.Selector.OutputDim(); len(b.Manifest.SelectedFeatures) > 0 && k != len(b.Manifest.SelectedFeatures) {
		return shapeErr(fmt.Sprintf("selector keeps %d columns, manifest declares %d selected",
			k, len(b.Manifest.SelectedFeatures)))
	}

	if dim := b.Classifier.InputDim(); dim != b.Selector.OutputDim() {
		return shapeErr(fmt.Sprintf("classifier expects %d features, selector produces %d",
			dim, b.Selector.OutputDim()))
	}
	return nil
}

// ModelVersion 返回工件声明的模型版本。
func (b *Bundle) ModelVersion() string { return b.Manifest.Version() }

// wrapMissing 把文件不存在归一为 MISSING_ARTIFACT，其余错误透传。
func wrapMissing(err error, file string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return core.NewDomainError(core.ModuleArtifact, core.ErrorCodeMissingArtifact,
			fmt.Sprintf("artifact: %s not found; run the training pipeline first", file))
	}
	return err
}

func shapeErr(msg string) error {
	return core.NewDomainError(core.ModuleArtifact, core.ErrorCodeShapeMismatch, "artifact: "+msg)
}
