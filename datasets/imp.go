package datasets

import (
	"fmt"

	"github.com/helioget/helioget/schema"
)

// impColumns names the data columns of a merged IMP 8 minute record in file
// order, after the Year / Decimal Day / Hour / Minute time fields.
var impColumns = []string{
	"sw_flag",
	"x_gse", "y_gse", "z_gse", "y_gsm", "z_gsm",
	"nm", "fcm", "dwm",
	"abs_b_avg", "b_avg_abs", "b_lat", "b_long",
	"bx_gse", "by_gse", "bz_gse", "by_gsm", "bz_gsm",
	"sigma_abs_b", "sigma_b", "sigma_bx", "sigma_by", "sigma_bz",
	"plas_reg", "npp", "fcp", "dwp",
	"v_fit", "vx_fit_gse", "vy_fit_gse", "vz_fit_gse",
	"vlong_fit", "vlat_fit", "np_fit", "tp_fit",
	"v_mom", "vx_mom_gse", "vy_mom_gse", "vz_mom_gse",
	"vlong_mom", "vlat_mom", "np_mom", "tp_mom",
}

var impBadValues = map[string][]float64{
	"sw_flag":     {9},
	"x_gse":       {9999.99},
	"y_gse":       {9999.99},
	"z_gse":       {9999.99},
	"y_gsm":       {9999.99},
	"z_gsm":       {9999.99},
	"nm":          {9},
	"fcm":         {99},
	"dwm":         {9.99},
	"abs_b_avg":   {9999.99},
	"b_avg_abs":   {9999.99},
	"b_lat":       {9999.99},
	"b_long":      {9999.99},
	"bx_gse":      {9999.99},
	"by_gse":      {9999.99},
	"bz_gse":      {9999.99},
	"by_gsm":      {9999.99},
	"bz_gsm":      {9999.99},
	"sigma_abs_b": {9999.99},
	"sigma_b":     {9999.99},
	"sigma_bx":    {9999.99},
	"sigma_by":    {9999.99},
	"sigma_bz":    {9999.99},
	"plas_reg":    {9},
	"npp":         {9},
	"fcp":         {99},
	"dwp":         {9.99},
	"v_fit":       {9999.9},
	"vx_fit_gse":  {9999.9},
	"vy_fit_gse":  {9999.9},
	"vz_fit_gse":  {9999.9},
	"vlong_fit":   {9999.9},
	"vlat_fit":    {9999.9},
	"np_fit":      {9999.9},
	"tp_fit":      {9999999},
	"v_mom":       {9999.9},
	"vx_mom_gse":  {9999.9},
	"vy_mom_gse":  {9999.9},
	"vz_mom_gse":  {9999.9},
	"vlong_mom":   {9999.9},
	"vlat_mom":    {9999.9},
	"np_mom":      {9999.9},
	"tp_mom":      {9999999},
}

var impUnits = map[string]string{
	"x_gse": "R_E", "y_gse": "R_E", "z_gse": "R_E", "y_gsm": "R_E", "z_gsm": "R_E",
	"abs_b_avg": "nT", "b_avg_abs": "nT", "b_lat": "deg", "b_long": "deg",
	"bx_gse": "nT", "by_gse": "nT", "bz_gse": "nT", "by_gsm": "nT", "bz_gsm": "nT",
	"sigma_abs_b": "nT", "sigma_b": "nT", "sigma_bx": "nT", "sigma_by": "nT", "sigma_bz": "nT",
	"v_fit": "km/s", "vx_fit_gse": "km/s", "vy_fit_gse": "km/s", "vz_fit_gse": "km/s",
	"vlong_fit": "deg", "vlat_fit": "deg",
	"np_fit": "cm**-3", "tp_fit": "K",
	"v_mom": "km/s", "vx_mom_gse": "km/s", "vy_mom_gse": "km/s", "vz_mom_gse": "km/s",
	"vlong_mom": "deg", "vlat_mom": "deg",
	"np_mom": "cm**-3", "tp_mom": "K",
}

func init() {
	Register(Product{
		Descriptor: &schema.Descriptor{
			Mission:       "imp8",
			Product:       "merged",
			RemoteBaseURL: "https://cdaweb.gsfc.nasa.gov/pub/data/imp/imp8/merged",
			Granularity:   schema.Monthly,
			FileName: func(iv schema.Interval) string {
				year, month, _ := iv.Date()
				return fmt.Sprintf("imp_min_merge%d%02d.asc", year, month)
			},
			Units:     impUnits,
			BadValues: impBadValues,
		},
		Parser: &ColumnarParser{
			Columns:    impColumns,
			TimeLayout: YearDoyHourMinute,
			BadValues:  impBadValues,
		},
		Doc: "IMP 8 merged magnetic field and plasma data, minute cadence",
	})
}
