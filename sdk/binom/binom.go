// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package binom 提供精確（解析、非模擬）的二項分布計算。
//
// 設計重點：
//   - 全部走解析解：不做 Monte-Carlo、不依賴 RNG。
//   - 係數走整數 Pascal 累加，在本引擎使用範圍（n <= 30）內完全精確，
//     不依賴浮點捨入修正。
//   - 對域外輸入（k 超出 [0,n]）回傳 0 而不是錯誤：這是呼叫端 bug，
//     引擎容忍而不拒絕。n >= 0 與 0 <= p <= 1 是呼叫端的合約。
package binom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PointMass 分布中的一點：P(X=K) 與累積機率 P(X<=K)。
type PointMass struct {
	K           int     `json:"k"`
	Probability float64 `json:"p"`
	Cumulative  float64 `json:"cum"`
}

// Scenario 四個情境點，總結一個事件類別的發生次數分布。
//
//	Optimist  : 25 百分位（至少 25% 的機率不超過此次數）
//	Average   : 期望值 n*p
//	Pessimist : 75 百分位
//	WorstCase : n（每個 sector 都發生）
type Scenario struct {
	Optimist  int     `json:"optimist"`
	Average   float64 `json:"average"`
	Pessimist int     `json:"pessimist"`
	WorstCase int     `json:"worst_case"`
}

// Coefficient 計算 C(n,k)，整數精確。
//
// 以 Pascal 三角逐列累加（只保留到第 k 欄），並利用對稱性
// C(n,k) = C(n,n-k) 縮小 k。k 超出 [0,n] 回傳 0。
func Coefficient(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	row := make([]uint64, k+1)
	row[0] = 1
	for i := 1; i <= n; i++ {
		top := k
		if i < top {
			top = i
		}
		for j := top; j > 0; j-- {
			row[j] += row[j-1]
		}
	}
	return row[k]
}

// Probability 計算 P(X=k)，X ~ Binomial(n, p)。
//
// p=0 與 p=1 特別處理，避免 0^0 的不定型。
// k 超出 [0,n] 回傳 0。
func Probability(n, k int, p float64) float64 {
	if k < 0 || k > n {
		return 0
	}
	if p == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	if p == 1 {
		if k == n {
			return 1
		}
		return 0
	}
	c := float64(Coefficient(n, k))
	return c * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
}

// ExpectedValue 期望值 n*p
func ExpectedValue(n int, p float64) float64 {
	return float64(n) * p
}

// Distribution 回傳 k = 0..n 的完整分布。
// 累積機率為 running sum，夾制在 <= 1 以遮蔽浮點上溢。
func Distribution(n int, p float64) []PointMass {
	pmf := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		pmf[k] = Probability(n, k, p)
	}
	return toPoints(pmf)
}

// DistributionOf 回傳獨立但「不同 p」的 Bernoulli 試行之和的精確分布
// （Poisson binomial），以逐項摺積計算。
//
// 所有 p 相同時結果與 Distribution(len(ps), p) 一致；
// OutcomeEstimator 在選區混合不同 sector type 時走這條路。
func DistributionOf(ps []float64) []PointMass {
	pmf := make([]float64, 1, len(ps)+1)
	pmf[0] = 1
	for _, p := range ps {
		next := make([]float64, len(pmf)+1)
		for k, m := range pmf {
			next[k] += m * (1 - p)
			next[k+1] += m * p
		}
		pmf = next
	}
	return toPoints(pmf)
}

func toPoints(pmf []float64) []PointMass {
	cum := make([]float64, len(pmf))
	floats.CumSum(cum, pmf)
	out := make([]PointMass, len(pmf))
	for k := range pmf {
		c := cum[k]
		if c > 1 {
			c = 1
		}
		out[k] = PointMass{K: k, Probability: pmf[k], Cumulative: c}
	}
	return out
}

// Percentile 回傳第一個累積機率 >= target 的 k。
// 全部都不滿足時回傳 n（防範浮點讓累積停在 1.0 之下）。
func Percentile(n int, p float64, target float64) int {
	return percentileOf(Distribution(n, p), target)
}

func percentileOf(points []PointMass, target float64) int {
	for _, pt := range points {
		if pt.Cumulative >= target {
			return pt.K
		}
	}
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].K
}

// Scenarios 將 (n, p) 總結成四個情境點。
// n=0 或 p=0 時全部為 0。
func Scenarios(n int, p float64) Scenario {
	if n <= 0 || p <= 0 {
		return Scenario{}
	}
	points := Distribution(n, p)
	return Scenario{
		Optimist:  percentileOf(points, 0.25),
		Average:   ExpectedValue(n, p),
		Pessimist: percentileOf(points, 0.75),
		WorstCase: n,
	}
}

// ScenariosOf 與 Scenarios 相同，但由異質試行（Poisson binomial）推導。
// 期望值為 sum(ps)。ps 為空或全 0 時回傳零值。
func ScenariosOf(ps []float64) Scenario {
	mean := 0.0
	for _, p := range ps {
		mean += p
	}
	if len(ps) == 0 || mean == 0 {
		return Scenario{}
	}
	points := DistributionOf(ps)
	return Scenario{
		Optimist:  percentileOf(points, 0.25),
		Average:   mean,
		Pessimist: percentileOf(points, 0.75),
		WorstCase: len(ps),
	}
}
