package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const devicesFixture = `* daemon not running; starting now at tcp:5037
* daemon started successfully
List of devices attached
R58M123ABC             device usb:1-1 product:a51nsxx model:SM_A515F device:a51 transport_id:3
emulator-5554          unauthorized usb:2-1 transport_id:1
0123456789ABCDEF       offline
HT7A1B2C3D             no permissions (user in plugdev group; are your udev rules wrong?); see [http://developer.android.com/tools/device.html]
ZY22FOO                recovery transport_id:9
lonely

`

func TestParseDevices(t *testing.T) {
	devices := ParseDevices(devicesFixture)
	require.Len(t, devices, 5)

	first := devices[0]
	assert.Equal(t, "R58M123ABC", first.ID)
	assert.Equal(t, first.ID, first.SerialNumber)
	assert.Equal(t, "SM_A515F", first.Model)
	assert.Equal(t, "a51nsxx", first.Product)
	assert.Equal(t, "a51", first.DeviceCode)
	assert.Equal(t, "3", first.TransportID)
	assert.Equal(t, StatusConnected, first.Status)
	assert.True(t, first.IsAuthorized)

	second := devices[1]
	assert.Equal(t, StatusUnauthorized, second.Status)
	assert.False(t, second.IsAuthorized)
	assert.Equal(t, Unknown, second.Model)
	assert.Equal(t, Unknown, second.Product)
	assert.Equal(t, "1", second.TransportID)

	assert.Equal(t, StatusOffline, devices[2].Status)
	assert.Equal(t, StatusNoPermission, devices[3].Status)
	assert.False(t, devices[3].IsAuthorized)

	// Нераспознанное состояние передается как есть
	assert.Equal(t, Status("recovery"), devices[4].Status)
	assert.False(t, devices[4].IsAuthorized)
}

func TestParseDevices_AuthorizedOnlyForDeviceStatus(t *testing.T) {
	for _, dev := range ParseDevices(devicesFixture) {
		assert.Equal(t, dev.Status == StatusConnected, dev.IsAuthorized, dev.ID)
	}
}

func TestParseDevices_HeaderOnly(t *testing.T) {
	assert.Empty(t, ParseDevices("List of devices attached\n\n"))
	assert.Empty(t, ParseDevices(""))
}

func TestParseDevices_NoHeaderDropsFirstLine(t *testing.T) {
	devices := ParseDevices("garbage header\nSERIAL1 device\n")
	require.Len(t, devices, 1)
	assert.Equal(t, "SERIAL1", devices[0].ID)
}

const listingFixture = `total 48
drwxrwx--x  6 root sdcard_rw 4096 2024-03-01 09:15 .
drwxr-x--x  4 root sdcard_rw 4096 2024-02-28 18:00 ..
drwxrwx--x  2 u0_a123 sdcard_rw 4096 2024-03-01 09:10 backup
-rw-rw----  1 u0_a123 sdcard_rw 204800 2024-03-01 09:14 inventory.db
-rw-rw----  1 u0_a123 sdcard_rw 17 2024-03-01 09:14 shelf list 2024.csv
-rw-rw----  1 u0_a123 sdcard_rw ??? 2024-03-01 09:14 broken-size.txt
lrwxrwxrwx  1 root root 21 2024-01-01 00:00 sdcard -> /storage/self/primary
ls: ./secret: Permission denied
`

func TestParseListing(t *testing.T) {
	files := ParseListing("/sdcard/handy", listingFixture)
	require.Len(t, files, 5)

	dir := files[0]
	assert.Equal(t, "backup", dir.Name)
	assert.True(t, dir.IsDirectory)
	assert.Equal(t, "/sdcard/handy/backup", dir.Path)

	db := files[1]
	assert.Equal(t, "inventory.db", db.Name)
	assert.False(t, db.IsDirectory)
	assert.Equal(t, int64(204800), db.Size)
	assert.Equal(t, "-rw-rw----", db.Permissions)
	assert.True(t, time.Date(2024, 3, 1, 9, 14, 0, 0, time.Local).Equal(db.ModifiedAt))

	// Имя с пробелами собирается из оставшихся токенов
	assert.Equal(t, "shelf list 2024.csv", files[2].Name)
	assert.Equal(t, "/sdcard/handy/shelf list 2024.csv", files[2].Path)

	// Нечитаемый размер превращается в 0
	assert.Equal(t, int64(0), files[3].Size)

	assert.Equal(t, "sdcard", files[4].Name)
}

func TestParseListing_SkipsShortLines(t *testing.T) {
	files := ParseListing("/", "total 0\n-rw 1 a b 10 2024-01-01\n\n")
	assert.Empty(t, files)
}
