package pipeline

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/thant-thiha/Premier-League-23-24/dataset"
	"github.com/thant-thiha/Premier-League-23-24/linear"
	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
	"github.com/thant-thiha/Premier-League-23-24/pkg/log"
	"github.com/thant-thiha/Premier-League-23-24/report"
	"github.com/thant-thiha/Premier-League-23-24/split"
)

// Run executes one full analysis: acquire and validate the match table,
// split it, fit the candidate models on the training partition, and score
// them. The holdout partition is read exactly once, to score the final
// ridge model; nothing upstream of that ever sees it.
//
// A failing bank model is logged and skipped so one collinear feature set
// cannot abort the rest of the comparison. Data-quality, acquisition, and
// ridge failures abort the run; a failed run returns no table.
func Run(ctx context.Context, cfg Config) (*report.Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	if cfg.DataURL != "" {
		if err := dataset.Fetch(ctx, cfg.DataURL, cfg.DataPath); err != nil {
			return nil, err
		}
	}

	ds, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	ds = ds.Derive()
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	slog.Info("loaded match table", log.PathKey, cfg.DataPath, log.RowsKey, ds.Len())

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	splitter := split.NewHoldoutSplitter(cfg.HoldoutFraction)
	trainIdx, holdoutIdx, err := splitter.Split(ds.TargetValues(), rng)
	if err != nil {
		return nil, err
	}
	training := ds.Subset(trainIdx)
	holdout := ds.Subset(holdoutIdx)
	slog.Info("split dataset",
		log.SeedKey, cfg.Seed,
		"training_rows", training.Len(),
		"holdout_rows", holdout.Len(),
	)

	table := report.NewTable()
	trainY := training.Target()

	for _, spec := range DefaultBank() {
		pred, err := fitBankModel(spec, training)
		if err != nil {
			slog.Warn("model fit failed, skipping",
				log.ModelKey, spec.Name,
				log.ErrAttr(err),
			)
			continue
		}
		res, err := table.Score(spec.Name, report.PartitionTraining, trainY, pred)
		if err != nil {
			return nil, err
		}
		slog.Info("scored model",
			log.ModelKey, res.Model,
			log.PartitionKey, res.Partition,
			log.RMSEKey, res.RMSE,
		)
	}

	// The regularized model: penalty chosen by cross-validation on the
	// training partition only.
	trainX, err := training.Matrix(RidgeFeatures())
	if err != nil {
		return nil, err
	}
	rc := linear.NewRidgeCV(cfg.LambdaGrid, cfg.Folds)
	if err := rc.Fit(trainX, trainY, rng); err != nil {
		return nil, errors.Wrap(err, "fitting regularized model")
	}
	slog.Info("selected ridge penalty",
		log.LambdaKey, rc.BestLambda,
		log.FoldsKey, cfg.Folds,
		log.FeaturesKey, len(RidgeFeatures()),
	)

	trainPred, err := rc.Predict(trainX)
	if err != nil {
		return nil, err
	}
	res, err := table.Score(RidgeModelName, report.PartitionTraining, trainY, trainPred)
	if err != nil {
		return nil, err
	}
	slog.Info("scored model",
		log.ModelKey, res.Model,
		log.PartitionKey, res.Partition,
		log.RMSEKey, res.RMSE,
	)

	// The only read of the holdout partition in the entire run.
	holdoutX, err := holdout.Matrix(RidgeFeatures())
	if err != nil {
		return nil, err
	}
	holdoutPred, err := rc.Predict(holdoutX)
	if err != nil {
		return nil, err
	}
	res, err = table.Score(RidgeModelName, report.PartitionHoldout, holdout.Target(), holdoutPred)
	if err != nil {
		return nil, err
	}
	slog.Info("scored model",
		log.ModelKey, res.Model,
		log.PartitionKey, res.Partition,
		log.RMSEKey, res.RMSE,
	)

	slog.Info("run complete", log.DurationMsKey, time.Since(started).Milliseconds())
	return table, nil
}

// fitBankModel fits one candidate on the training partition and returns its
// training predictions.
func fitBankModel(spec ModelSpec, training *dataset.Dataset) (*mat.VecDense, error) {
	var X *mat.Dense
	var model *linear.Regression

	if len(spec.Features) == 0 {
		// Global average: a lone ones column with no extra intercept.
		X = training.Ones()
		model = linear.NewRegression(linear.WithFitIntercept(false))
	} else {
		var err error
		X, err = training.Matrix(spec.Features)
		if err != nil {
			return nil, err
		}
		model = linear.NewRegression()
	}

	if err := model.Fit(X, training.Target()); err != nil {
		return nil, err
	}
	return model.Predict(X)
}
