package datasets

import (
	"fmt"

	"github.com/helioget/helioget/schema"
)

// heliosColumns names the data columns of a corefit day file in file order,
// after the Year / Day / Hour / Minute / Second time fields.
var heliosColumns = []string{
	"b_instrument", "b_r", "b_t", "b_n",
	"sigma_b_r", "sigma_b_t", "sigma_b_n",
	"ion_instrument", "np_status",
	"n_p", "vp_r", "vp_t", "vp_n",
	"tp_perp", "tp_par",
}

var heliosUnits = map[string]string{
	"b_r": "nT", "b_t": "nT", "b_n": "nT",
	"sigma_b_r": "nT", "sigma_b_t": "nT", "sigma_b_n": "nT",
	"n_p": "cm**-3",
	"vp_r": "km/s", "vp_t": "km/s", "vp_n": "km/s",
	"tp_perp": "K", "tp_par": "K",
}

func init() {
	for _, probe := range []int{1, 2} {
		probe := probe
		Register(Product{
			Descriptor: &schema.Descriptor{
				Mission: fmt.Sprintf("helios%d", probe),
				Product: "corefit",
				RemoteBaseURL: fmt.Sprintf(
					"http://helios-data.ssl.berkeley.edu/data/E1_experiment/New_proton_corefit_data_2017/ascii/helios%d", probe),
				Granularity: schema.Daily,
				FileName: func(iv schema.Interval) string {
					year := iv.Start.Year()
					doy := iv.Start.YearDay()
					return fmt.Sprintf("h%d_%d_%03d_corefit.csv", probe, year, doy)
				},
				Directory: func(iv schema.Interval) string {
					return fmt.Sprintf("%d", iv.Start.Year())
				},
				Units: heliosUnits,
			},
			Parser: &ColumnarParser{
				Columns:    heliosColumns,
				TimeLayout: YearDoyHourMinuteSecond,
				Comma:      true,
				HeaderRows: 1,
			},
			Doc: fmt.Sprintf("Helios %d proton corefit plasma and field data", probe),
		})
	}
}
