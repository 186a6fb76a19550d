package radiofx_test

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-radiofx/dsp/audio"
	"github.com/cwbudde/algo-radiofx/radiofx"
)

func ExamplePipeline_Process() {
	samples := make([]float64, 44100)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*1000*float64(i)/44100)
	}

	sig, err := audio.New(44100, samples)
	if err != nil {
		panic(err)
	}

	p := radiofx.New(radiofx.WithSeed(1))
	res, err := p.Process(context.Background(), radiofx.StyleWalkie, sig, radiofx.Overrides{"bit_depth": 4})
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Signal.Len(), res.Signal.SampleRate)
	fmt.Println(res.Config.Int(radiofx.ParamBitDepth), res.Config.Float(radiofx.ParamCompressionRatio))
	for _, st := range res.Stages {
		fmt.Print(st.Name, " ")
	}
	fmt.Println()
	// Output:
	// 44100 44100
	// 4 8
	// filter compressor distortion noise requantize
}

func ExampleResolve() {
	_, err := radiofx.Resolve(radiofx.StyleRadio, radiofx.Overrides{"bit_depth": 4})
	fmt.Println(err)
	// Output: radiofx: unknown parameter: bit_depth=4: not recognised by style radio
}
