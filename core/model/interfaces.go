package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対するクラスラベルの予測を行う
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// ProbaPredictor は陽性クラス確率を返すモデルのインターフェース
type ProbaPredictor interface {
	// PredictProba は各レコードのP(Y=1)を返す
	PredictProba(X mat.Matrix) (*mat.VecDense, error)
}

// Classifier は二値分類モデルのインターフェース
type Classifier interface {
	Fitter
	Predictor
	ProbaPredictor
}
