/*Package interval reads and writes BED interval files.
  Coordinates are zero-based and half-open, as in the BED format; callers
  converting from one-based closed formats (GFF) must subtract one from the
  start.  It assumes every position fits in a PosType, which is currently
  defined as int32 since that's what BAM files are limited to.
*/
package interval
