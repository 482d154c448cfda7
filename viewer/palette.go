package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/components"
)

var background = rl.Color{R: 34, G: 52, B: 30, A: 255}

var palette = map[components.Kind]rl.Color{
	components.KindGrass:          {R: 110, G: 190, B: 80, A: 255},
	components.KindSeedling:       {R: 150, G: 210, B: 110, A: 255},
	components.KindPlant:          {R: 60, G: 150, B: 70, A: 255},
	components.KindPoisonousPlant: {R: 150, G: 60, B: 170, A: 255},
	components.KindTree:           {R: 30, G: 100, B: 40, A: 255},
	components.KindDeadTree:       {R: 110, G: 90, B: 60, A: 255},
	components.KindLog:            {R: 120, G: 80, B: 45, A: 255},
	components.KindLitter:         {R: 150, G: 120, B: 70, A: 255},
	components.KindMushroom:       {R: 220, G: 200, B: 170, A: 255},
	components.KindInsect:         {R: 30, G: 30, B: 30, A: 255},
	components.KindInsectivore:    {R: 230, G: 160, B: 40, A: 255},
	components.KindSmallCarnivore: {R: 220, G: 80, B: 60, A: 255},
	components.KindBigCarnivore:   {R: 160, G: 30, B: 30, A: 255},
	components.KindSmallHerbivore: {R: 240, G: 230, B: 190, A: 255},
	components.KindBigHerbivore:   {R: 170, G: 140, B: 100, A: 255},
	components.KindScavenger:      {R: 100, G: 100, B: 110, A: 255},
	components.KindCarcass:        {R: 120, G: 40, B: 50, A: 255},
	components.KindFaeces:         {R: 80, G: 55, B: 30, A: 255},
	components.KindLake:           {R: 50, G: 110, B: 190, A: 255},
}

func kindColor(k components.Kind) rl.Color {
	if c, ok := palette[k]; ok {
		return c
	}
	return rl.Magenta
}
