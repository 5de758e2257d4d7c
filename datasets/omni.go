package datasets

import (
	"fmt"

	"github.com/helioget/helioget/schema"
)

// omniColumns names the data columns of a low-resolution OMNI2 record in
// file order, after the Year / Decimal Day / Hour time fields.
var omniColumns = []string{
	"bartels_rotation", "id_imf_spacecraft", "id_sw_plasma_spacecraft",
	"points_imf_avg", "points_plasma_avg",
	"abs_b", "mag_avg_field", "lat_avg_field", "long_avg_field",
	"bx_gse", "by_gse", "bz_gse", "by_gsm", "bz_gsm",
	"sigma_abs_b", "sigma_b", "sigma_bx", "sigma_by", "sigma_bz",
	"proton_temp", "proton_density", "flow_speed",
	"flow_long_angle", "flow_lat_angle", "na_np", "flow_pressure",
	"sigma_t", "sigma_n", "sigma_v", "sigma_phi_v", "sigma_theta_v",
	"sigma_na_np", "electric_field", "plasma_beta", "alfven_mach",
	"kp", "sunspot_r", "dst", "ae",
	"proton_flux_1mev", "proton_flux_2mev", "proton_flux_4mev",
	"proton_flux_10mev", "proton_flux_30mev", "proton_flux_60mev",
	"flag", "ap", "f10_7", "pc_n", "al_kyoto", "au_kyoto",
	"magnetosonic_mach",
}

// omniBadValues lists the fill sentinels the archive uses per column.
var omniBadValues = map[string][]float64{
	"bartels_rotation":        {9999},
	"id_imf_spacecraft":       {99},
	"id_sw_plasma_spacecraft": {99},
	"points_imf_avg":          {999},
	"points_plasma_avg":       {999},
	"abs_b":                   {999.9},
	"mag_avg_field":           {999.9},
	"lat_avg_field":           {999.9},
	"long_avg_field":          {999.9},
	"bx_gse":                  {999.9},
	"by_gse":                  {999.9},
	"bz_gse":                  {999.9},
	"by_gsm":                  {999.9},
	"bz_gsm":                  {999.9},
	"sigma_abs_b":             {999.9},
	"sigma_b":                 {999.9},
	"sigma_bx":                {999.9},
	"sigma_by":                {999.9},
	"sigma_bz":                {999.9},
	"proton_temp":             {9999999},
	"proton_density":          {999.9},
	"flow_speed":              {9999},
	"flow_long_angle":         {999.9},
	"flow_lat_angle":          {999.9},
	"na_np":                   {9.999},
	"flow_pressure":           {99.99},
	"sigma_t":                 {9999999},
	"sigma_n":                 {999.9},
	"sigma_v":                 {9999},
	"sigma_phi_v":             {999.9},
	"sigma_theta_v":           {999.9},
	"sigma_na_np":             {9.999},
	"electric_field":          {999.99},
	"plasma_beta":             {999.99},
	"alfven_mach":             {999.9},
	"kp":                      {99},
	"sunspot_r":               {999},
	"dst":                     {99999},
	"ae":                      {9999},
	"proton_flux_1mev":        {999999.99},
	"proton_flux_2mev":        {99999.99},
	"proton_flux_4mev":        {99999.99},
	"proton_flux_10mev":       {99999.99},
	"proton_flux_30mev":       {99999.99},
	"proton_flux_60mev":       {99999.99},
	"ap":                      {999},
	"f10_7":                   {999.9},
	"pc_n":                    {999.9},
	"al_kyoto":                {99999},
	"au_kyoto":                {99999},
	"magnetosonic_mach":       {99.9},
}

var omniUnits = map[string]string{
	"abs_b": "nT", "mag_avg_field": "nT",
	"bx_gse": "nT", "by_gse": "nT", "bz_gse": "nT", "by_gsm": "nT", "bz_gsm": "nT",
	"sigma_abs_b": "nT", "sigma_b": "nT", "sigma_bx": "nT", "sigma_by": "nT", "sigma_bz": "nT",
	"lat_avg_field": "deg", "long_avg_field": "deg",
	"proton_temp": "K", "sigma_t": "K",
	"proton_density": "cm**-3", "sigma_n": "cm**-3",
	"flow_speed": "km/s", "sigma_v": "km/s",
	"flow_long_angle": "deg", "flow_lat_angle": "deg",
	"flow_pressure":  "nPa",
	"electric_field": "mV/m",
	"dst":            "nT", "ae": "nT", "al_kyoto": "nT", "au_kyoto": "nT",
	"f10_7": "sfu",
}

func init() {
	Register(Product{
		Descriptor: &schema.Descriptor{
			Mission:       "omni",
			Product:       "hourly",
			RemoteBaseURL: "https://cdaweb.gsfc.nasa.gov/pub/data/omni/low_res_omni",
			Granularity:   schema.Yearly,
			FileName: func(iv schema.Interval) string {
				year, _, _ := iv.Date()
				return fmt.Sprintf("omni2_%d.dat", year)
			},
			Units:     omniUnits,
			BadValues: omniBadValues,
		},
		Parser: &ColumnarParser{
			Columns:    omniColumns,
			TimeLayout: YearDoyHour,
			BadValues:  omniBadValues,
		},
		Doc: "OMNI2 hourly merged solar wind and geomagnetic indices",
	})
}
