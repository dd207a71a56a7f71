package theme

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Color is a logical terminal color. The values match the 16 ANSI indexes so
// an unmapped color can fall back to the terminal's own palette.
type Color int

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	Gray
	DarkGray
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
	White
)

// ANSI returns the terminal palette index for c.
func (c Color) ANSI() lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(int(c)))
}

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lipgloss converts the color for use in styles.
func (c RGB) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// Scale multiplies each channel by factor, truncating toward zero.
func (c RGB) Scale(factor float64) RGB {
	scale := func(v uint8) uint8 {
		f := float64(v) * factor
		if f < 0 {
			return 0
		}
		if f > 255 {
			return 255
		}
		return uint8(f)
	}
	return RGB{R: scale(c.R), G: scale(c.G), B: scale(c.B)}
}

type palette map[Color]RGB

var palettes = map[Scheme]palette{
	Default: {
		White:        {228, 236, 245},
		Black:        {11, 17, 23},
		DarkGray:     {29, 41, 58},
		Gray:         {140, 158, 182},
		Cyan:         {94, 213, 221},
		Blue:         {126, 170, 255},
		Green:        {108, 212, 149},
		Yellow:       {243, 197, 109},
		Red:          {241, 126, 126},
		Magenta:      {198, 157, 255},
		LightRed:     {255, 150, 150},
		LightGreen:   {137, 230, 170},
		LightYellow:  {255, 216, 133},
		LightBlue:    {157, 194, 255},
		LightMagenta: {217, 182, 255},
		LightCyan:    {124, 227, 234},
	},
	Dark: {
		White:        {230, 237, 247},
		Black:        {9, 12, 20},
		DarkGray:     {20, 28, 45},
		Gray:         {124, 143, 171},
		Cyan:         {93, 204, 226},
		Blue:         {106, 158, 255},
		Green:        {116, 215, 155},
		Yellow:       {247, 204, 117},
		Red:          {244, 130, 130},
		Magenta:      {200, 151, 255},
		LightRed:     {255, 154, 154},
		LightGreen:   {143, 233, 175},
		LightYellow:  {255, 224, 140},
		LightBlue:    {159, 199, 255},
		LightMagenta: {222, 189, 255},
		LightCyan:    {123, 222, 239},
	},
	Nord: {
		White:        {229, 233, 240},
		Black:        {46, 52, 64},
		DarkGray:     {59, 66, 82},
		Gray:         {129, 161, 193},
		Cyan:         {136, 192, 208},
		Blue:         {129, 161, 193},
		Green:        {163, 190, 140},
		Yellow:       {235, 203, 139},
		Red:          {191, 97, 106},
		Magenta:      {180, 142, 173},
		LightRed:     {219, 129, 139},
		LightGreen:   {186, 214, 164},
		LightYellow:  {245, 219, 161},
		LightBlue:    {159, 189, 217},
		LightMagenta: {200, 165, 195},
		LightCyan:    {164, 208, 221},
	},
	SolarizedDark: {
		White:        {238, 232, 213},
		Black:        {0, 43, 54},
		DarkGray:     {7, 54, 66},
		Gray:         {88, 110, 117},
		Cyan:         {42, 161, 152},
		Blue:         {38, 139, 210},
		Green:        {133, 153, 0},
		Yellow:       {181, 137, 0},
		Red:          {220, 50, 47},
		Magenta:      {211, 54, 130},
		LightRed:     {234, 98, 93},
		LightGreen:   {152, 174, 15},
		LightYellow:  {201, 159, 23},
		LightBlue:    {73, 155, 218},
		LightMagenta: {220, 87, 148},
		LightCyan:    {74, 182, 173},
	},
	Gruvbox: {
		White:        {235, 219, 178},
		Black:        {29, 32, 33},
		DarkGray:     {60, 56, 54},
		Gray:         {168, 153, 132},
		Cyan:         {142, 192, 124},
		Blue:         {131, 165, 152},
		Green:        {184, 187, 38},
		Yellow:       {250, 189, 47},
		Red:          {251, 73, 52},
		Magenta:      {211, 134, 155},
		LightRed:     {255, 122, 102},
		LightGreen:   {204, 207, 67},
		LightYellow:  {255, 211, 90},
		LightBlue:    {158, 193, 179},
		LightMagenta: {227, 160, 178},
		LightCyan:    {165, 209, 146},
	},
	Rtop: {
		White:        {235, 242, 255},
		Black:        {10, 14, 24},
		DarkGray:     {29, 37, 58},
		Gray:         {122, 141, 173},
		Cyan:         {74, 235, 220},
		Blue:         {94, 164, 255},
		Green:        {122, 241, 156},
		Yellow:       {255, 212, 92},
		Red:          {255, 124, 124},
		Magenta:      {214, 149, 255},
		LightRed:     {255, 155, 155},
		LightGreen:   {154, 255, 184},
		LightYellow:  {255, 228, 134},
		LightBlue:    {131, 187, 255},
		LightMagenta: {229, 177, 255},
		LightCyan:    {112, 247, 234},
	},
}
