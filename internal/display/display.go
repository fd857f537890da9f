package display

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

// Status is the snapshot the panel renders each refresh.
type Status struct {
	Program     string
	Move        string
	LeftWheel   int
	RightWheel  int
	TargetWidth float64
}

// Panel is the 128x64 SSD1306 status display on the back of the chassis.
// Purely a local readout; losing it never affects the control loop.
type Panel struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

// NewPanel opens the I2C bus and initializes the display.
func NewPanel() (*Panel, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("display: periph host init: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("display: open I2C bus: %w", err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("display: init: %w", err)
	}

	return &Panel{bus: bus, dev: dev}, nil
}

// Close releases the I2C bus.
func (p *Panel) Close() error {
	return p.bus.Close()
}

// Splash shows the boot screen.
func (p *Panel) Splash() error {
	img, drawer := blankFrame()

	drawer.Dot = fixed.P(20, 26)
	drawer.DrawBytes([]byte("line_picker"))

	drawer.Dot = fixed.P(30, 43)
	drawer.DrawBytes([]byte("booting"))

	return p.dev.Draw(p.dev.Bounds(), img, image.Point{})
}

// Show renders the current cycle status.
func (p *Panel) Show(st Status) error {
	img, drawer := blankFrame()

	drawer.Dot = fixed.P(0, 13)
	drawer.DrawBytes([]byte(st.Program))

	drawer.Dot = fixed.P(0, 26)
	drawer.DrawBytes([]byte(st.Move))

	drawer.Dot = fixed.P(0, 39)
	drawer.DrawBytes([]byte(fmt.Sprintf("L:%4d R:%4d", st.LeftWheel, st.RightWheel)))

	drawer.Dot = fixed.P(0, 52)
	if st.TargetWidth > 0 {
		drawer.DrawBytes([]byte(fmt.Sprintf("blk w: %3.0f", st.TargetWidth)))
	} else {
		drawer.DrawBytes([]byte("blk w:  --"))
	}

	return p.dev.Draw(p.dev.Bounds(), img, image.Point{})
}

func blankFrame() (*image1bit.VerticalLSB, *font.Drawer) {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	return img, drawer
}
